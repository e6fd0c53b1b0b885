package specification

import "gorm.io/gorm"

// ByTransitType filters stations by transit type
type ByTransitType struct {
	Type string
}

func (s ByTransitType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transit_type = ?", s.Type)
}

// ByLine filters stations by line name (case-insensitive)
type ByLine struct {
	Line string
}

func (s ByLine) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("line ILIKE ?", s.Line)
}
