package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	httpserver "hotel_search/internal/adapters/http_server"
	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/app"
	"hotel_search/internal/catalog"
	"hotel_search/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := app.NewSearchService(app.NewStaticSource(catalog.Builtin()))
	srv := httpserver.New(nil, 0)
	srv.MountHandlers(httpserver.NewHandlers(svc))
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestSearch_OKAndETag(t *testing.T) {
	ts := newTestServer(t)
	url := ts.URL + "/v1/hotels/search?destination=Berlin&checkIn=2024-06-01&checkOut=2024-06-08&sortBy=price-low"

	res := get(t, url, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body domain.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 3 || body.Location != "Berlin" || body.Resolution.Kind != domain.ResolvedFromStatic {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Hotels[0].Price != 257 || body.Hotels[0].Nights != 7 {
		t.Fatalf("expected cheapest 7-night record first, got %+v", body.Hotels[0])
	}
	if res.Header.Get("X-Search-Id") == "" {
		t.Fatalf("missing X-Search-Id")
	}

	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	again := get(t, url, map[string]string{"If-None-Match": etag})
	if again.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304 on matching ETag, got %d", again.StatusCode)
	}
}

func TestSearch_RepeatedAndCommaFacets(t *testing.T) {
	ts := newTestServer(t)
	res := get(t, ts.URL+"/v1/hotels/search?destination=Paris&starRating=4-star&starRating=5-star&guestRating=excellent,very-good", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var body domain.SearchResponse
	_ = json.NewDecoder(res.Body).Decode(&body)
	if body.Total != 3 {
		t.Fatalf("total = %d", body.Total)
	}
}

func TestSearch_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	cases := map[string]string{
		"unknown star tag":   "starRating=6-star",
		"unknown deal":       "deals=free-lunch",
		"reversed dates":     "checkIn=2024-06-08&checkOut=2024-06-01",
		"adults not integer": "adults=abc",
		"zero adults":        "adults=0",
		"max below min":      "minPrice=300&maxPrice=100",
		"unknown sort":       "sortBy=cheapest",
	}
	for name, qs := range cases {
		res := get(t, ts.URL+"/v1/hotels/search?"+qs, nil)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
			t.Fatalf("%s: content type %q", name, ct)
		}
	}
}

func TestGetHotel(t *testing.T) {
	ts := newTestServer(t)

	res := get(t, ts.URL+"/v1/hotels/13?destination=London&adults=3", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var h domain.HotelRecord
	if err := json.NewDecoder(res.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Name != "The Savoy London" || h.Guests != 3 || h.Price != 748 {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	if res := get(t, ts.URL+"/v1/hotels/999?destination=London", nil); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	if res := get(t, ts.URL+"/v1/hotels/abc", nil); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestHealthzAndCORS(t *testing.T) {
	ts := newTestServer(t)
	if res := get(t, ts.URL+"/healthz", nil); res.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/v1/hotels/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer res.Body.Close()
	if res.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("missing CORS allow-origin header")
	}
}

func TestSearch_LenientInputsLikeTheFrontEnd(t *testing.T) {
	ts := newTestServer(t)
	cases := map[string]string{
		"unparsable dates are ignored": "destination=Berlin&checkIn=tomorrow&checkOut=2024-06-08",
		"zero maxPrice is no bound":    "destination=Berlin&maxPrice=0",
		"zero maxPrice with minPrice":  "destination=Berlin&minPrice=100&maxPrice=0",
	}
	for name, qs := range cases {
		res := get(t, ts.URL+"/v1/hotels/search?"+qs, nil)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", name, res.StatusCode)
		}
		var body domain.SearchResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if body.Total != 3 {
			t.Fatalf("%s: total = %d", name, body.Total)
		}
		for _, h := range body.Hotels {
			if h.Nights != 1 {
				t.Fatalf("%s: nights = %d, want 1", name, h.Nights)
			}
		}
	}
}

func TestRouterTimeout_KeepsHandlerAnswerAndRecordsRealStatus(t *testing.T) {
	srv := httpserver.New(nil, 50*time.Millisecond)
	// answers once its deadline passes, like a search that fell back
	srv.Mount("/deadline-aware", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("fallback"))
	}))
	srv.Mount("/silent", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)

	okBefore := testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/deadline-aware", "GET", "200"))
	res := get(t, ts.URL+"/deadline-aware", nil)
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(body) != "fallback" {
		t.Fatalf("expected the handler's own answer, got %d %q", res.StatusCode, body)
	}
	if got := testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/deadline-aware", "GET", "200")); got != okBefore+1 {
		t.Fatalf("200 not recorded: %v -> %v", okBefore, got)
	}

	gwBefore := testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/silent", "GET", "504"))
	if res := get(t, ts.URL+"/silent", nil); res.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", res.StatusCode)
	}
	if got := testutil.ToFloat64(observability.HTTPRequests.WithLabelValues("/silent", "GET", "504")); got != gwBefore+1 {
		t.Fatalf("504 not recorded: %v -> %v", gwBefore, got)
	}
}
