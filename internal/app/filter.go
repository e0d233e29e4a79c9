package app

import (
	"strconv"
	"strings"

	"hotel_search/internal/domain"
)

// Facet identifiers accepted at the HTTP edge.
var (
	GuestRatingBuckets = map[string]float64{
		"excellent": 4.5,
		"very-good": 4.0,
		"good":      3.5,
		"pleasant":  3.0,
	}
	DistanceBuckets = map[string]float64{
		"within-1km": 1,
		"within-3km": 3,
		"within-5km": 5,
	}
	MealPhrases = map[string]string{
		"breakfast":     "breakfast",
		"half-board":    "half board",
		"all-inclusive": "all inclusive",
	}
)

const (
	DealFreeCancellation = "free-cancellation"
	DealReserveNow       = "reserve-now"
	DealSpecialOffers    = "special-offers"
)

// filterContext holds decoded selections so the per-record loop does no parsing.
type filterContext struct {
	q            domain.SearchQuery
	stars        map[int]struct{}
	starsActive  bool
	ratingFloor  float64
	ratingActive bool
	propTypes    map[string]struct{}
	distances    []float64
	meals        []string
	deals        []string
	amenities    []string
}

func newFilterContext(q domain.SearchQuery) *filterContext {
	fc := &filterContext{q: q}

	if len(q.StarRatings) > 0 {
		fc.starsActive = true
		fc.stars = make(map[int]struct{}, len(q.StarRatings))
		for _, s := range q.StarRatings {
			if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "-star")); err == nil {
				fc.stars[n] = struct{}{}
			}
		}
	}

	// OR across buckets collapses to the lowest threshold; "any" or an
	// unknown bucket lifts the constraint entirely.
	if len(q.GuestRatings) > 0 {
		fc.ratingActive = true
		fc.ratingFloor = 5
		for _, b := range q.GuestRatings {
			th, ok := GuestRatingBuckets[b]
			if !ok {
				fc.ratingActive = false
				break
			}
			fc.ratingFloor = min(fc.ratingFloor, th)
		}
	}

	if len(q.PropertyTypes) > 0 {
		fc.propTypes = make(map[string]struct{}, len(q.PropertyTypes))
		for _, p := range q.PropertyTypes {
			fc.propTypes[strings.ToLower(p)] = struct{}{}
		}
	}
	for _, d := range q.Distances {
		if km, ok := DistanceBuckets[d]; ok {
			fc.distances = append(fc.distances, km)
		} else {
			fc.distances = append(fc.distances, -1) // matches nothing
		}
	}
	for _, m := range q.Meals {
		if p, ok := MealPhrases[m]; ok {
			fc.meals = append(fc.meals, p)
		} else {
			fc.meals = append(fc.meals, strings.ToLower(m))
		}
	}
	fc.deals = q.Deals
	for _, a := range q.Amenities {
		fc.amenities = append(fc.amenities, strings.ToLower(strings.ReplaceAll(a, "-", " ")))
	}
	return fc
}

// filterRecords keeps records that satisfy every active facet. Output is a
// subsequence of the input.
func filterRecords(rs []domain.HotelRecord, q domain.SearchQuery) []domain.HotelRecord {
	fc := newFilterContext(q)
	out := make([]domain.HotelRecord, 0, len(rs))
	for _, r := range rs {
		if fc.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (fc *filterContext) matches(r domain.HotelRecord) bool {
	if fc.starsActive {
		if _, ok := fc.stars[r.Stars]; !ok {
			return false
		}
	}
	if fc.q.MinPrice != nil && r.Price < *fc.q.MinPrice {
		return false
	}
	if fc.q.MaxPrice != nil && r.Price > *fc.q.MaxPrice {
		return false
	}
	if fc.ratingActive && r.Rating < fc.ratingFloor {
		return false
	}
	if fc.propTypes != nil {
		if _, ok := fc.propTypes[strings.ToLower(r.PropertyType)]; !ok {
			return false
		}
	}
	if len(fc.distances) > 0 && !fc.matchDistance(r) {
		return false
	}
	if len(fc.meals) > 0 && !anyAmenityContains(r.Amenities, fc.meals) {
		return false
	}
	if len(fc.deals) > 0 && !fc.matchDeal(r) {
		return false
	}
	if len(fc.amenities) > 0 && !anyAmenityContains(r.Amenities, fc.amenities) {
		return false
	}
	return true
}

func (fc *filterContext) matchDistance(r domain.HotelRecord) bool {
	km, ok := distanceKm(r.Distance)
	if !ok {
		return false
	}
	for _, limit := range fc.distances {
		if limit >= 0 && km <= limit {
			return true
		}
	}
	return false
}

func (fc *filterContext) matchDeal(r domain.HotelRecord) bool {
	for _, d := range fc.deals {
		switch d {
		case DealFreeCancellation, DealReserveNow:
			if r.FreeCancellation {
				return true
			}
		case DealSpecialOffers:
			if r.OriginalPrice != nil && *r.OriginalPrice > r.Price {
				return true
			}
		}
	}
	return false
}

func anyAmenityContains(amenities, wanted []string) bool {
	for _, a := range amenities {
		la := strings.ToLower(a)
		for _, w := range wanted {
			if strings.Contains(la, w) {
				return true
			}
		}
	}
	return false
}

// distanceKm reads the leading figure of texts like "0.5 km to ..." or "800 m to ...".
func distanceKm(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	num := strings.ReplaceAll(fields[0], ",", ".")
	unit := ""
	if len(fields) > 1 {
		unit = strings.ToLower(fields[1])
	}
	// tolerate "0.5km"
	if i := strings.IndexFunc(num, func(r rune) bool { return r != '.' && (r < '0' || r > '9') }); i > 0 {
		unit = strings.ToLower(num[i:])
		num = num[:i]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if unit == "m" {
		return v / 1000, true
	}
	return v, true
}
