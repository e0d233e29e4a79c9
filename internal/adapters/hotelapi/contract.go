package hotelapi

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"hotel_search/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBase = "https://schemas.hotel-search.local/"

// contract holds the compiled v1 schemas for the search envelope and each hotel.
type contract struct {
	envelope *jsonschema.Schema
	hotel    *jsonschema.Schema
}

func loadContract() (*contract, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	for _, name := range []string{"search.v1.json", "hotel.v1.json"} {
		f, err := schemaFS.Open("schemas/" + name)
		if err != nil {
			return nil, err
		}
		err = c.AddResource(schemaBase+name, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}
	env, err := c.Compile(schemaBase + "search.v1.json")
	if err != nil {
		return nil, fmt.Errorf("compile envelope schema: %w", err)
	}
	hotel, err := c.Compile(schemaBase + "hotel.v1.json")
	if err != nil {
		return nil, fmt.Errorf("compile hotel schema: %w", err)
	}
	return &contract{envelope: env, hotel: hotel}, nil
}

type envelopeV1 struct {
	Version string            `json:"version"`
	Hotels  []json.RawMessage `json:"hotels"`
}

type hotelV1 struct {
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
	OriginalPrice    *int     `json:"originalPrice"`
	Taxes            int      `json:"taxes"`
	FreeCancellation bool     `json:"freeCancellation"`
	Stars            int      `json:"stars"`
	PropertyType     string   `json:"propertyType"`
}

func (h hotelV1) template() domain.Template {
	return domain.Template{
		ID:               h.ID,
		Name:             h.Name,
		Location:         h.Location,
		Distance:         h.Distance,
		Image:            h.Image,
		Rating:           h.Rating,
		Reviews:          h.Reviews,
		RoomType:         h.RoomType,
		BedType:          h.BedType,
		Amenities:        h.Amenities,
		Price:            h.Price,
		OriginalPrice:    h.OriginalPrice,
		Taxes:            h.Taxes,
		FreeCancellation: h.FreeCancellation,
		Stars:            h.Stars,
		PropertyType:     h.PropertyType,
	}
}

// rejection explains why one hotel was quarantined.
type rejection struct {
	Index  int
	Reason string
}

// decode validates body against the v1 contract. A bad envelope fails the
// whole response; a bad hotel is skipped and reported.
func (c *contract) decode(body []byte) ([]domain.Template, []rejection, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	if err := c.envelope.Validate(doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrContract, err)
	}
	var env envelopeV1
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	out := make([]domain.Template, 0, len(env.Hotels))
	var rejected []rejection
	seen := make(map[int64]struct{}, len(env.Hotels))
	for i, raw := range env.Hotels {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			rejected = append(rejected, rejection{i, err.Error()})
			continue
		}
		if err := c.hotel.Validate(v); err != nil {
			rejected = append(rejected, rejection{i, err.Error()})
			continue
		}
		var h hotelV1
		if err := json.Unmarshal(raw, &h); err != nil {
			rejected = append(rejected, rejection{i, err.Error()})
			continue
		}
		if h.OriginalPrice != nil && *h.OriginalPrice < h.Price {
			rejected = append(rejected, rejection{i, "originalPrice below price"})
			continue
		}
		if _, dup := seen[h.ID]; dup {
			rejected = append(rejected, rejection{i, "duplicate id"})
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h.template())
	}
	return out, rejected, nil
}
