package specification

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// PriceAtMost keeps listings priced at or below the bound
type PriceAtMost struct {
	Max float64
}

func (s PriceAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price <= ?", s.Max)
}

// PriceAtLeast keeps listings priced at or above the bound
type PriceAtLeast struct {
	Min float64
}

func (s PriceAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("price >= ?", s.Min)
}

// ByBedrooms filters by exact bedroom count
type ByBedrooms struct {
	Count int
}

func (s ByBedrooms) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bedrooms = ?", s.Count)
}

// ByPropertyType filters by the fixed property-type vocabulary
type ByPropertyType struct {
	Type string
}

func (s ByPropertyType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("property_type = ?", s.Type)
}

// ByListingType filters rent vs sale
type ByListingType struct {
	Type string
}

func (s ByListingType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("listing_type = ?", s.Type)
}

// TextQuery matches free text against title, description and address.
// Using ILIKE for Postgres (case insensitive).
type TextQuery struct {
	Query string
}

func (s TextQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ? OR address ILIKE ?", pattern, pattern, pattern)
}

// WithinRadius keeps listings whose coordinates fall within radiusMeters
// of the center point, using the same spherical (haversine) model as the
// in-process proximity engine so store-side and local filtering agree.
type WithinRadius struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

const haversineSQL = `(2 * 6371000 * asin(sqrt(
	pow(sin(radians(latitude - ?) / 2), 2) +
	cos(radians(?)) * cos(radians(latitude)) *
	pow(sin(radians(longitude - ?) / 2), 2)
)))`

func (s WithinRadius) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(haversineSQL+" <= ?", s.Latitude, s.Latitude, s.Longitude, s.RadiusMeters)
}

// MissingEmbedding keeps listings whose embedding vector has not been
// computed yet. Used by the backfill indexer.
type MissingEmbedding struct{}

func (MissingEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}

// OrderByDistance orders listings by ascending spherical distance from a
// point. Remote-only ordering: the sort engine has no local comparator
// for it.
type OrderByDistance struct {
	Latitude  float64
	Longitude float64
}

func (s OrderByDistance) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(gorm.Expr(haversineSQL+" ASC", s.Latitude, s.Latitude, s.Longitude))
}

// OrderByRelevance orders by semantic similarity between the listing
// embedding and the query embedding (pgvector cosine distance).
type OrderByRelevance struct {
	QueryEmbedding []float32
}

func (s OrderByRelevance) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(gorm.Expr("embedding <=> ? ASC", pgvector.NewVector(s.QueryEmbedding)))
}

// OrderByPricePerArea orders by the derived price/area key with a
// zero-area guard matching the local comparator.
type OrderByPricePerArea struct {
	Desc bool
}

func (s OrderByPricePerArea) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order("CASE WHEN area_sqft > 0 THEN price / area_sqft ELSE 0 END " + direction)
}
