package domain

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortRating      SortKey = "rating"
	SortReviews     SortKey = "reviews"
	SortDistance    SortKey = "distance"
)

const UnknownLocation = "Unknown Location"

// SearchQuery is the request shape. Facet slices hold opaque identifiers
// ("4-star", "excellent", "free-cancellation", ...); values inside one facet
// are OR'd, facets are AND'd.
type SearchQuery struct {
	Destination string
	CheckIn     string // ISO date, optional
	CheckOut    string // ISO date, optional
	Adults      int
	Children    int
	Rooms       int
	MinPrice    *int
	MaxPrice    *int

	StarRatings   []string
	PropertyTypes []string
	GuestRatings  []string
	Distances     []string
	Meals         []string
	Deals         []string
	Amenities     []string

	SortBy SortKey
}

// WithDefaults fills zero values: 2 adults, 1 room, recommended ordering.
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Adults < 1 {
		q.Adults = 2
	}
	if q.Children < 0 {
		q.Children = 0
	}
	if q.Rooms < 1 {
		q.Rooms = 1
	}
	if q.SortBy == "" {
		q.SortBy = SortRecommended
	}
	return q
}

// Guests is the party size used for pricing.
func (q SearchQuery) Guests() int { return q.Adults + q.Children }

// LocationLabel is the destination echoed back to the caller.
func (q SearchQuery) LocationLabel() string {
	if q.Destination != "" {
		return q.Destination
	}
	return UnknownLocation
}

// Unfaceted returns a copy of q with every facet selection and price bound cleared.
func (q SearchQuery) Unfaceted() SearchQuery {
	q.MinPrice, q.MaxPrice = nil, nil
	q.StarRatings, q.PropertyTypes, q.GuestRatings = nil, nil, nil
	q.Distances, q.Meals, q.Deals, q.Amenities = nil, nil, nil, nil
	return q
}

type ResolutionKind string

const (
	ResolvedFromStatic   ResolutionKind = "static"
	ResolvedFromLive     ResolutionKind = "live"
	ResolvedFromFallback ResolutionKind = "fallback"
)

type FallbackReason string

const (
	ReasonTransport FallbackReason = "transport"
	ReasonStatus    FallbackReason = "status"
	ReasonDecode    FallbackReason = "decode"
	ReasonContract  FallbackReason = "contract"
	ReasonUnknown   FallbackReason = "unknown"
)

// Resolution tells the caller which data path produced a response.
type Resolution struct {
	Kind   ResolutionKind `json:"kind"`
	Reason FallbackReason `json:"reason,omitempty"` // set only for fallback
}

type SearchResponse struct {
	SearchID   string        `json:"searchId"`
	Hotels     []HotelRecord `json:"hotels"`
	Total      int           `json:"total"`
	Location   string        `json:"location"`
	Resolution Resolution    `json:"resolution"`
	Skipped    int           `json:"skipped"`
	Cached     bool          `json:"cached"`
}

// SourceResult is what a HotelDataSource hands back before filtering and sorting.
type SourceResult struct {
	Records []HotelRecord
	Skipped int  // live records rejected by contract validation
	Cached  bool // served from cache
}
