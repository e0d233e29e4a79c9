package httpserver

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/domain"
)

// searchRequest is the validated query string of search and detail endpoints.
type searchRequest struct {
	Destination   string   `validate:"max=200"`
	CheckIn       string
	CheckOut      string
	Adults        int      `validate:"min=1,max=30"`
	Children      int      `validate:"min=0,max=20"`
	Rooms         int      `validate:"min=1,max=10"`
	MinPrice      *int     `validate:"omitempty,min=0"`
	MaxPrice      *int     `validate:"omitempty,min=0"`
	StarRatings   []string `validate:"dive,oneof=1-star 2-star 3-star 4-star 5-star"`
	PropertyTypes []string `validate:"dive,oneof=hotel resort boutique apartment palace"`
	GuestRatings  []string `validate:"dive,oneof=any excellent very-good good pleasant"`
	Distances     []string `validate:"dive,oneof=within-1km within-3km within-5km"`
	Meals         []string `validate:"dive,oneof=breakfast half-board all-inclusive"`
	Deals         []string `validate:"dive,oneof=free-cancellation reserve-now special-offers"`
	Amenities     []string `validate:"dive,min=1,max=40"`
	SortBy        string   `validate:"omitempty,oneof=recommended price-low price-high rating reviews distance"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		r := sl.Current().Interface().(searchRequest)
		in, okIn := parseISO(r.CheckIn)
		out, okOut := parseISO(r.CheckOut)
		if okIn && okOut && !out.After(in) {
			sl.ReportError(r.CheckOut, "CheckOut", "CheckOut", "aftercheckin", "")
		}
		if r.MinPrice != nil && r.MaxPrice != nil && *r.MaxPrice < *r.MinPrice {
			sl.ReportError(r.MaxPrice, "MaxPrice", "MaxPrice", "gteminprice", "")
		}
	}, searchRequest{})
	return v
}

func parseISO(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// parseSearchRequest reads query params; list facets may repeat or be comma
// separated. Unparsable dates are dropped and a zero maxPrice means no bound,
// matching how the search front end sends untouched fields.
func parseSearchRequest(v url.Values) (searchRequest, error) {
	r := searchRequest{
		Destination:   strings.TrimSpace(v.Get("destination")),
		CheckIn:       dateParam(v, "checkIn"),
		CheckOut:      dateParam(v, "checkOut"),
		StarRatings:   list(v, "starRating"),
		PropertyTypes: list(v, "propertyType"),
		GuestRatings:  list(v, "guestRating"),
		Distances:     list(v, "distance"),
		Meals:         list(v, "meals"),
		Deals:         list(v, "deals"),
		Amenities:     list(v, "amenities"),
		SortBy:        v.Get("sortBy"),
	}
	var err error
	if r.Adults, err = intParam(v, "adults", 2); err != nil {
		return r, err
	}
	if r.Children, err = intParam(v, "children", 0); err != nil {
		return r, err
	}
	if r.Rooms, err = intParam(v, "rooms", 1); err != nil {
		return r, err
	}
	if r.MinPrice, err = optIntParam(v, "minPrice"); err != nil {
		return r, err
	}
	if r.MaxPrice, err = optIntParam(v, "maxPrice"); err != nil {
		return r, err
	}
	if r.MaxPrice != nil && *r.MaxPrice == 0 {
		r.MaxPrice = nil
	}
	return r, nil
}

func dateParam(v url.Values, key string) string {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return ""
	}
	if _, ok := parseISO(s); !ok {
		log.Debug().Str(key, s).Msg("unparsable date ignored")
		return ""
	}
	return s
}

func (r searchRequest) query() domain.SearchQuery {
	return domain.SearchQuery{
		Destination:   r.Destination,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Adults:        r.Adults,
		Children:      r.Children,
		Rooms:         r.Rooms,
		MinPrice:      r.MinPrice,
		MaxPrice:      r.MaxPrice,
		StarRatings:   r.StarRatings,
		PropertyTypes: r.PropertyTypes,
		GuestRatings:  r.GuestRatings,
		Distances:     r.Distances,
		Meals:         r.Meals,
		Deals:         r.Deals,
		Amenities:     r.Amenities,
		SortBy:        domain.SortKey(r.SortBy),
	}
}

func list(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func intParam(v url.Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func optIntParam(v url.Values, key string) (*int, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &n, nil
}

// describe flattens validator errors into one problem detail line.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
