package entity

import (
	"time"

	"github.com/google/uuid"
)

// Transit type values for stations in the gazetteer.
const (
	TransitHeavyRail    = "heavy-rail"    // MRT
	TransitLightRail    = "light-rail"    // LRT
	TransitCommuterRail = "commuter-rail" // KTM Komuter
	TransitMonorail     = "monorail"
)

type Station struct {
	Id          uuid.UUID
	Name        string
	TransitType string
	Line        string
	Latitude    float64
	Longitude   float64
	Facilities  []string
	CreatedAt   time.Time
}

// ValidTransitType reports whether t is one of the known transit types.
func ValidTransitType(t string) bool {
	switch t {
	case TransitHeavyRail, TransitLightRail, TransitCommuterRail, TransitMonorail:
		return true
	}
	return false
}
