package hotelapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel_search/internal/adapters/hotelapi"
	"hotel_search/internal/domain"
)

const validBody = `{
  "version": "1",
  "hotels": [
    {"id": 7, "name": "Alfama Rooms", "location": "Lisbon, Portugal", "rating": 4.4, "reviews": 120,
     "price": 140, "originalPrice": 160, "stars": 3, "amenities": ["Free WiFi"], "freeCancellation": true},
    {"id": 8, "location": "Lisbon, Portugal", "rating": 4.1, "reviews": 5, "price": 90, "stars": 2},
    {"id": 9, "name": "Cheap Trick", "location": "Lisbon, Portugal", "rating": 3.9, "reviews": 5,
     "price": 200, "originalPrice": 150, "stars": 3},
    {"id": 10, "name": "Too Many Stars", "location": "Lisbon", "rating": 4.0, "reviews": 1, "price": 50, "stars": 7}
  ]
}`

func newClient(t *testing.T, url string) *hotelapi.Client {
	t.Helper()
	cl, err := hotelapi.New(url, "test-key", 100, 2*time.Second) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestClient_SearchHotels_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(validBody))
		}
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hotels, skipped, err := newClient(t, ts.URL).SearchHotels(ctx, domain.SearchQuery{Destination: "Lisbon", Adults: 2, Rooms: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
	if len(hotels) != 1 || hotels[0].ID != 7 {
		t.Fatalf("unexpected hotels: %+v", hotels)
	}
	if skipped != 3 {
		t.Fatalf("expected 3 rejected records, got %d", skipped)
	}
	if hotels[0].OriginalPrice == nil || *hotels[0].OriginalPrice != 160 {
		t.Fatalf("originalPrice not mapped")
	}
}

func TestClient_SearchHotels_ForwardsQuery(t *testing.T) {
	reqs := make(chan *http.Request, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqs <- r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"version":"1","hotels":[]}`))
	}))
	defer ts.Close()

	q := domain.SearchQuery{Destination: "New York", CheckIn: "2024-06-01", CheckOut: "2024-06-03", Adults: 2, Children: 1, Rooms: 1}
	if _, _, err := newClient(t, ts.URL+"/").SearchHotels(context.Background(), q); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := <-reqs
	if got.URL.Path != "/search" {
		t.Fatalf("path = %s", got.URL.Path)
	}
	v := got.URL.Query()
	if v.Get("location") != "New York" || v.Get("checkIn") != "2024-06-01" || v.Get("children") != "1" {
		t.Fatalf("unexpected query: %s", got.URL.RawQuery)
	}
	if got.Header.Get("X-API-Key") != "test-key" {
		t.Fatalf("missing api key header")
	}
}

func TestClient_SearchHotels_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }, domain.ErrStatus},
		{"not json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) }, domain.ErrDecode},
		{"wrong version", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"version":"2","hotels":[]}`))
		}, domain.ErrContract},
		{"missing hotels", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"version":"1"}`)) }, domain.ErrContract},
	}
	for _, c := range cases {
		ts := httptest.NewServer(c.handler)
		_, _, err := newClient(t, ts.URL).SearchHotels(context.Background(), domain.SearchQuery{})
		ts.Close()
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: want %v, got %v", c.name, c.want, err)
		}
	}
}

func TestClient_SearchHotels_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := newClient(t, url).SearchHotels(ctx, domain.SearchQuery{})
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("want ErrTransport, got %v", err)
	}
}

func TestNew_RequiresBase(t *testing.T) {
	if _, err := hotelapi.New("", "", 1, time.Second); err == nil {
		t.Fatalf("expected error for empty base")
	}
}
