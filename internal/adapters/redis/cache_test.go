package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "hotel_search/internal/adapters/redis"
	"hotel_search/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var miss domain.SourceResult
	if ok, err := c.Get(ctx, "k", &miss); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	op := 500
	in := domain.SourceResult{
		Records: []domain.HotelRecord{{ID: 1, Name: "A", Price: 420, OriginalPrice: &op, Nights: 2, Guests: 2}},
		Skipped: 1,
	}
	if err := c.Set(ctx, "k", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("hotelsearch:k") {
		t.Fatalf("expected prefixed key in redis")
	}

	var out domain.SourceResult
	ok, err := c.Get(ctx, "k", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(out.Records) != 1 || out.Records[0].Name != "A" || *out.Records[0].OriginalPrice != 500 || out.Skipped != 1 {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	if err := c.Set(ctx, "ttl", domain.SourceResult{Skipped: 3}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var out domain.SourceResult
	if ok, _ := c.Get(ctx, "ttl", &out); ok {
		t.Fatalf("expected entry to expire")
	}
}
