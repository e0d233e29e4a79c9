package app

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_search/internal/domain"
)

// parseDate accepts a plain ISO date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// stayNights is ceil(checkOut-checkIn) in days, at least 1. Missing,
// unparsable or reversed dates yield 1.
func stayNights(checkIn, checkOut string) int {
	if checkIn == "" || checkOut == "" {
		return 1
	}
	in, okIn := parseDate(checkIn)
	out, okOut := parseDate(checkOut)
	if !okIn || !okOut {
		log.Debug().Str("checkIn", checkIn).Str("checkOut", checkOut).Msg("unparsable stay dates, using 1 night")
		return 1
	}
	d := out.Sub(in)
	if d <= 0 {
		return 1
	}
	n := int(math.Ceil(d.Hours() / 24))
	return max(1, n)
}

func priceMultiplier(nights, guests int) float64 {
	m := 1.0
	switch {
	case nights >= 7:
		m *= 0.9
	case nights >= 3:
		m *= 0.95
	}
	if guests > 2 {
		m *= 1.1
	}
	return m
}

func applyMultiplier(price int, m float64) int {
	return int(math.Round(float64(price) * m))
}

// deriveStatic turns catalog templates into per-query records.
func deriveStatic(ts []domain.Template, q domain.SearchQuery) []domain.HotelRecord {
	nights := stayNights(q.CheckIn, q.CheckOut)
	guests := q.Guests()
	m := priceMultiplier(nights, guests)

	out := make([]domain.HotelRecord, 0, len(ts))
	for _, t := range ts {
		r := recordFromTemplate(t, nights, guests)
		r.Price = applyMultiplier(t.Price, m)
		if t.OriginalPrice != nil {
			op := applyMultiplier(*t.OriginalPrice, m)
			r.OriginalPrice = &op
		}
		if q.Destination != "" {
			r.Location = q.Destination
		}
		out = append(out, r)
	}
	return out
}

// deriveLive stamps stay data onto provider records. Provider prices are
// already quoted for the stay, so no multiplier is applied.
func deriveLive(ts []domain.Template, q domain.SearchQuery) []domain.HotelRecord {
	nights := stayNights(q.CheckIn, q.CheckOut)
	guests := q.Guests()

	out := make([]domain.HotelRecord, 0, len(ts))
	for _, t := range ts {
		// location is required by the v1 contract, so it is never empty here
		out = append(out, recordFromTemplate(t, nights, guests))
	}
	return out
}

func recordFromTemplate(t domain.Template, nights, guests int) domain.HotelRecord {
	r := domain.HotelRecord{
		ID:               t.ID,
		Name:             t.Name,
		Location:         t.Location,
		Distance:         t.Distance,
		Image:            t.Image,
		Rating:           t.Rating,
		Reviews:          t.Reviews,
		RoomType:         t.RoomType,
		BedType:          t.BedType,
		Amenities:        append([]string(nil), t.Amenities...),
		Price:            t.Price,
		Nights:           nights,
		Guests:           guests,
		Taxes:            t.Taxes,
		FreeCancellation: t.FreeCancellation,
		Stars:            t.Stars,
		PropertyType:     t.PropertyType,
	}
	if t.OriginalPrice != nil {
		op := *t.OriginalPrice
		r.OriginalPrice = &op
	}
	return r
}
