package app

import (
	"cmp"
	"slices"

	"hotel_search/internal/domain"
)

// sortRecords returns a stably sorted copy; ties keep input order.
// Unknown keys sort like recommended (rating, highest first).
func sortRecords(rs []domain.HotelRecord, key domain.SortKey) []domain.HotelRecord {
	out := slices.Clone(rs)
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key domain.SortKey) func(a, b domain.HotelRecord) int {
	switch key {
	case domain.SortPriceLow:
		return func(a, b domain.HotelRecord) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceHigh:
		return func(a, b domain.HotelRecord) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortReviews:
		return func(a, b domain.HotelRecord) int { return cmp.Compare(b.Reviews, a.Reviews) }
	case domain.SortDistance:
		return func(a, b domain.HotelRecord) int {
			da, okA := distanceKm(a.Distance)
			db, okB := distanceKm(b.Distance)
			switch {
			case okA && okB:
				return cmp.Compare(da, db)
			case okA:
				return -1
			case okB:
				return 1
			}
			return 0
		}
	default: // recommended, rating
		return func(a, b domain.HotelRecord) int { return cmp.Compare(b.Rating, a.Rating) }
	}
}
