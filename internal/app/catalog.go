package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_search/internal/catalog"
	"hotel_search/internal/domain"
)

// CatalogService moves the template catalog between the builtin table and
// persistent storage.
type CatalogService struct {
	repo domain.CatalogRepository
}

func NewCatalogService(r domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: r}
}

type SeedReport struct {
	Upserted int
	Failed   int
}

// Seed upserts every city with at most workers writes in flight.
// A failed city is logged and counted; the rest still run.
func (s *CatalogService) Seed(ctx context.Context, cities []domain.CatalogCity, workers int) (SeedReport, error) {
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg            sync.WaitGroup
		upserted, bad atomic.Int64
	)

	for _, c := range cities {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return SeedReport{Upserted: int(upserted.Load()), Failed: int(bad.Load())}, err
		}
		wg.Add(1)
		go func(c domain.CatalogCity) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertCity(ctx, c); err != nil {
				bad.Add(1)
				log.Warn().Str("city", c.Key).Err(err).Msg("catalog upsert failed")
				return
			}
			upserted.Add(1)
			log.Info().Str("city", c.Key).Int("templates", len(c.Templates)).Msg("catalog upsert ok")
		}(c)
	}

	wg.Wait()
	return SeedReport{Upserted: int(upserted.Load()), Failed: int(bad.Load())}, nil
}

// Load reads the persisted catalog into a lookup table.
func (s *CatalogService) Load(ctx context.Context) (*catalog.Table, error) {
	cities, err := s.repo.LoadCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	t, err := catalog.FromCities(cities)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return t, nil
}
