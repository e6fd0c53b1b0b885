package dto

import (
	"time"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query string `json:"query" validate:"required,max=500"`
	// Mode biases rent/sale disambiguation when the query itself is
	// ambiguous ("2 bedroom condo" on the rentals tab means rent).
	Mode string `json:"mode" validate:"omitempty,oneof=rent sale"`
	Page int    `json:"page" validate:"min=0"`
	Sort string `json:"sort"`
}

// ParsedFilter echoes the structured interpretation of the query back to
// the client so the UI can render filter chips.
type ParsedFilter struct {
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	ListingType  string   `json:"listing_type,omitempty"`
	NearTransit  string   `json:"near_transit,omitempty"`
	NearPlace    string   `json:"near_place,omitempty"`
	FreeText     string   `json:"free_text,omitempty"`
}

type ListingCard struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	PropertyType   string     `json:"property_type"`
	ListingType    string     `json:"listing_type"`
	Price          float64    `json:"price"`
	Bedrooms       int        `json:"bedrooms"`
	Bathrooms      int        `json:"bathrooms"`
	AreaSqft       float64    `json:"area_sqft"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	ImageURL       string     `json:"image_url,omitempty"`
	NearestStation string     `json:"nearest_station,omitempty"`
	WalkMinutes    *int       `json:"walk_minutes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type SearchResponse struct {
	SearchKey      string        `json:"search_key"`
	Filter         ParsedFilter  `json:"filter"`
	Items          []ListingCard `json:"items"`
	Total          int64         `json:"total"`
	Accumulated    int           `json:"accumulated"`
	Page           int           `json:"page"`
	PageSize       int           `json:"page_size"`
	Complete       bool          `json:"complete"`
	Sort           string        `json:"sort"`
	SortedLocally  bool          `json:"sorted_locally"`
	Broadened      bool          `json:"broadened"`
	DroppedFilters []string      `json:"dropped_filters,omitempty"`
	Suggestions    []string      `json:"suggestions,omitempty"`
}

type AccumulatedResultsResponse struct {
	SearchKey   string        `json:"search_key"`
	Items       []ListingCard `json:"items"`
	Accumulated int           `json:"accumulated"`
	Total       *int64        `json:"total,omitempty"`
	Complete    bool          `json:"complete"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type FeedbackRequest struct {
	SearchKey string    `json:"search_key" validate:"required"`
	ListingId uuid.UUID `json:"listing_id" validate:"required"`
	Action    string    `json:"action" validate:"required,oneof=view click save contact"`
}
