package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/domain"
)

type SearchService struct {
	primary  domain.HotelDataSource
	fallback domain.HotelDataSource
	kind     domain.ResolutionKind
	budget   time.Duration
}

// NewSearchService answers every search from src, reported as static.
func NewSearchService(src domain.HotelDataSource) *SearchService {
	return &SearchService{primary: src, kind: domain.ResolvedFromStatic}
}

// NewSearchServiceWithFallback answers from live and falls back to static
// whenever live returns an error. budget bounds the whole live call,
// retries included; it must stay below the router timeout so the fallback
// is still written to the caller. Zero means no bound beyond the request's.
func NewSearchServiceWithFallback(live, static domain.HotelDataSource, budget time.Duration) *SearchService {
	return &SearchService{primary: live, fallback: static, kind: domain.ResolvedFromLive, budget: budget}
}

// Search runs source → filter → sort. It does not return errors: source
// failures degrade to the fallback and are reported in Resolution.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) domain.SearchResponse {
	q = q.WithDefaults()
	id := uuid.NewString()
	l := log.With().Str("search_id", id).Str("destination", q.Destination).Logger()

	res, resolution := s.fetch(ctx, q, id)

	hotels := sortRecords(filterRecords(res.Records, q), q.SortBy)
	if res.Skipped > 0 {
		observability.ObserveSkipped(res.Skipped)
		l.Warn().Int("skipped", res.Skipped).Msg("live records failed contract validation")
	}
	observability.ObserveSearch(string(resolution.Kind))

	l.Info().
		Str("resolution", string(resolution.Kind)).
		Int("candidates", len(res.Records)).
		Int("total", len(hotels)).
		Bool("cached", res.Cached).
		Msg("search completed")

	return domain.SearchResponse{
		SearchID:   id,
		Hotels:     hotels,
		Total:      len(hotels),
		Location:   q.LocationLabel(),
		Resolution: resolution,
		Skipped:    res.Skipped,
		Cached:     res.Cached,
	}
}

func (s *SearchService) fetch(ctx context.Context, q domain.SearchQuery, id string) (domain.SourceResult, domain.Resolution) {
	liveCtx := ctx
	if s.fallback != nil && s.budget > 0 {
		var cancel context.CancelFunc
		liveCtx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}

	res, err := s.primary.Search(liveCtx, q)
	if err == nil {
		return res, domain.Resolution{Kind: s.kind}
	}

	reason := domain.ReasonFor(err)
	if s.fallback == nil {
		log.Error().Err(err).Str("search_id", id).Msg("data source failed with no fallback configured")
		return domain.SourceResult{}, domain.Resolution{Kind: s.kind}
	}

	log.Warn().Err(err).Str("search_id", id).Str("reason", string(reason)).Msg("live search failed, using static catalog")
	observability.ObserveFallback(string(reason))

	fb, ferr := s.fallback.Search(ctx, q)
	if ferr != nil {
		log.Error().Err(ferr).Str("search_id", id).Msg("fallback source failed")
	}
	return fb, domain.Resolution{Kind: domain.ResolvedFromFallback, Reason: reason}
}

// Hotel finds one record by id among the unfaceted results for q.
func (s *SearchService) Hotel(ctx context.Context, id int64, q domain.SearchQuery) (domain.HotelRecord, error) {
	resp := s.Search(ctx, q.Unfaceted())
	for _, h := range resp.Hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.HotelRecord{}, fmt.Errorf("hotel %d: %w", id, domain.ErrNotFound)
}
