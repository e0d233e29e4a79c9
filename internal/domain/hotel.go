package domain

// Template is a catalog entry before per-query derivation (nights, guests, price).
type Template struct {
	ID               int64
	Name             string
	Location         string
	Distance         string // descriptive, e.g. "0.5 km to Brandenburg Gate"
	Image            string
	Rating           float64
	Reviews          int
	RoomType         string
	BedType          string
	Amenities        []string
	Price            int
	OriginalPrice    *int
	Taxes            int
	FreeCancellation bool
	Stars            int
	PropertyType     string
}

// HotelRecord is one bookable property as returned by a search.
type HotelRecord struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Distance         string   `json:"distance"`
	Image            string   `json:"image"`
	Rating           float64  `json:"rating"`
	Reviews          int      `json:"reviews"`
	RoomType         string   `json:"roomType"`
	BedType          string   `json:"bedType"`
	Amenities        []string `json:"amenities"`
	Price            int      `json:"price"`
	OriginalPrice    *int     `json:"originalPrice,omitempty"`
	Nights           int      `json:"nights"`
	Guests           int      `json:"guests"`
	Taxes            int      `json:"taxes"`
	FreeCancellation bool     `json:"freeCancellation"`
	Stars            int      `json:"stars"`
	PropertyType     string   `json:"propertyType,omitempty"`
}
