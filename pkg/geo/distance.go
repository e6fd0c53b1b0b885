package geo

import (
	"errors"
	"math"
)

// Coordinate is a WGS84 lat/lng pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const earthRadiusMeters = 6371000.0

// Serviced geographic bounds (Peninsular Malaysia, generous margins).
// Coordinates outside this box indicate a caller/data bug, not user input.
const (
	ServiceMinLat = 0.5
	ServiceMaxLat = 7.5
	ServiceMinLng = 99.0
	ServiceMaxLng = 105.0
)

var (
	ErrInvalidCoordinate = errors.New("geo: coordinate outside valid lat/lng range")
	ErrOutOfServiceArea  = errors.New("geo: coordinate outside serviced bounds")
)

// Distance returns the great-circle distance in meters between two
// coordinates using the haversine formula on a spherical earth model.
// The spherical approximation is intentional: all consumers deal in
// sub-2km walking distances where the error is negligible.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// Validate checks that the coordinate is a real lat/lng pair and lies
// inside the serviced geographic bounds.
func Validate(c Coordinate) error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return ErrInvalidCoordinate
	}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinate
	}
	if c.Latitude < ServiceMinLat || c.Latitude > ServiceMaxLat ||
		c.Longitude < ServiceMinLng || c.Longitude > ServiceMaxLng {
		return ErrOutOfServiceArea
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
