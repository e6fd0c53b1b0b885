package query

import "property-search-be/internal/entity"

// ProximityIntent is the "near transit / near place" signal extracted
// from a query. Invariant: either Place is resolved or AnyTransit is set
// (possibly narrowed by TransitType); the parser never emits an intent
// pointing at nothing.
type ProximityIntent struct {
	TransitType    string          `json:"transit_type,omitempty"` // empty = any transit type
	Place          *entity.Station `json:"place,omitempty"`
	PlaceText      string          `json:"place_text,omitempty"`
	AnyTransit     bool            `json:"any_transit"`
	MaxWalkMinutes int             `json:"max_walk_minutes"`
}

// ParsedQuery is the structured filter set extracted from free text.
// Unrecognized fields stay unset; parsing never fails.
type ParsedQuery struct {
	RawText      string           `json:"raw_text"`
	Bedrooms     *int             `json:"bedrooms,omitempty"`
	MinPrice     *float64         `json:"min_price,omitempty"`
	MaxPrice     *float64         `json:"max_price,omitempty"`
	PropertyType string           `json:"property_type,omitempty"`
	ListingType  string           `json:"listing_type,omitempty"`
	Proximity    *ProximityIntent `json:"proximity,omitempty"`

	// FreeText is what remains after slot extraction, used for the
	// text-search fallback (including degraded unresolvable place names).
	FreeText string `json:"free_text,omitempty"`
}

// PlaceResolver resolves a place-name span to a gazetteer station.
type PlaceResolver interface {
	Resolve(name string) (*entity.Station, bool)
}
