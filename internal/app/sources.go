package app

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"hotel_search/internal/catalog"
	"hotel_search/internal/domain"
)

// StaticSource answers from the in-memory catalog. It never fails.
type StaticSource struct {
	table *catalog.Table
}

func NewStaticSource(t *catalog.Table) *StaticSource {
	return &StaticSource{table: t}
}

func (s *StaticSource) Search(_ context.Context, q domain.SearchQuery) (domain.SourceResult, error) {
	return domain.SourceResult{Records: deriveStatic(s.table.Resolve(q.Destination), q)}, nil
}

// LiveSource answers from the external hotel API, caching derived records.
type LiveSource struct {
	api      domain.HotelAPI
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewLiveSource wires the API client. cache may be nil.
func NewLiveSource(api domain.HotelAPI, cache domain.Cache, ttl time.Duration) *LiveSource {
	return &LiveSource{api: api, cache: cache, cacheTTL: ttl}
}

func (s *LiveSource) Search(ctx context.Context, q domain.SearchQuery) (domain.SourceResult, error) {
	key := liveCacheKey(q)
	if s.cache != nil {
		var cached domain.SourceResult
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	ts, skipped, err := s.api.SearchHotels(ctx, q)
	if err != nil {
		return domain.SourceResult{}, err
	}
	res := domain.SourceResult{Records: deriveLive(ts, q), Skipped: skipped}

	if s.cache != nil && s.cacheTTL > 0 {
		_ = s.cache.Set(ctx, key, res, int(s.cacheTTL.Seconds()))
	}
	return res, nil
}

// liveCacheKey covers only what the upstream call depends on; facets and
// ordering are applied after the cache.
func liveCacheKey(q domain.SearchQuery) string {
	return fmt.Sprintf("live:v1:%s:%s:%s:%d:%d:%d",
		url.QueryEscape(catalog.Normalize(q.Destination)), q.CheckIn, q.CheckOut, q.Adults, q.Children, q.Rooms)
}
