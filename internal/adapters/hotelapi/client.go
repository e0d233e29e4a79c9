// Package hotelapi is the outbound client for the live hotel-search API.
package hotelapi

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/domain"
)

const maxBody = 4 << 20

type Client struct {
	base     string
	hc       *http.Client
	key      string
	rl       *rate.Limiter
	contract *contract
}

// New builds a client for base. key is optional; timeout bounds each attempt.
func New(base, key string, rps int, timeout time.Duration) (*Client, error) {
	if base == "" {
		return nil, errors.New("hotel API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ct, err := loadContract()
	if err != nil {
		return nil, err
	}
	return &Client{
		base:     strings.TrimRight(base, "/"),
		hc:       &http.Client{Timeout: timeout},
		key:      key,
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		contract: ct,
	}, nil
}

// SearchHotels calls GET {base}/search and returns the contract-valid hotels
// and how many were rejected.
func (c *Client) SearchHotels(ctx context.Context, q domain.SearchQuery) ([]domain.Template, int, error) {
	params := url.Values{}
	params.Set("location", q.Destination)
	params.Set("checkIn", q.CheckIn)
	params.Set("checkOut", q.CheckOut)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("children", strconv.Itoa(q.Children))
	params.Set("rooms", strconv.Itoa(q.Rooms))

	body, err := c.get(ctx, c.base+"/search?"+params.Encode())
	if err != nil {
		return nil, 0, err
	}

	hotels, rejected, err := c.contract.decode(body)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rejected {
		log.Debug().Int("index", r.Index).Str("reason", r.Reason).Msg("hotel API record rejected")
	}
	return hotels, len(rejected), nil
}

// get performs a GET with client-side rate limiting and retries, returning the body.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-search/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("hotelapi", "search", 0, time.Since(start))
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrTransport, ctx.Err())
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrTransport, err)
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return nil, lastErr
		}
		observability.ObserveExternal("hotelapi", "search", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrTransport, err)
			}
			return b, nil

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w: remote %d", domain.ErrStatus, resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			return nil, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d: %s", domain.ErrStatus, resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff is 100ms doubled per attempt plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
