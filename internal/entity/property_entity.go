package entity

import (
	"time"

	"github.com/google/uuid"
)

// Listing type values
const (
	ListingTypeRent = "rent"
	ListingTypeSale = "sale"
)

// Property type vocabulary (fixed, matched by the query parser)
const (
	PropertyTypeCondominium = "condominium"
	PropertyTypeApartment   = "apartment"
	PropertyTypeHouse       = "house"
	PropertyTypeStudio      = "studio"
	PropertyTypeShopOffice  = "shop-office"
	PropertyTypeOffice      = "office"
	PropertyTypeLand        = "land"
)

type Property struct {
	Id           uuid.UUID
	Title        string
	Description  string
	Address      string
	City         string
	PropertyType string
	ListingType  string
	Price        float64
	Bedrooms     int
	Bathrooms    int
	AreaSqft     float64
	Latitude     float64
	Longitude    float64
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

// PricePerArea returns price divided by floor area, or 0 for zero-area
// listings so derived sorts stay total.
func (p *Property) PricePerArea() float64 {
	if p.AreaSqft <= 0 {
		return 0
	}
	return p.Price / p.AreaSqft
}
