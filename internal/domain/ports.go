package domain

import "context"

// HotelDataSource produces derived hotel records for a query.
// Implementations are chosen at construction time.
type HotelDataSource interface {
	Search(ctx context.Context, q SearchQuery) (SourceResult, error)
}

// HotelAPI is the outbound live hotel-search API.
// It returns contract-valid templates plus the number of rejected records.
type HotelAPI interface {
	SearchHotels(ctx context.Context, q SearchQuery) (hotels []Template, skipped int, err error)
}

// CatalogRepository persists the city→template catalog.
type CatalogRepository interface {
	UpsertCity(ctx context.Context, c CatalogCity) error
	LoadCities(ctx context.Context) ([]CatalogCity, error)
}

// CatalogCity is one keyed template set. Default marks the fallback set.
type CatalogCity struct {
	Key       string
	Position  int
	Default   bool
	Templates []Template
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
