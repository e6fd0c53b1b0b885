package transit

import (
	"math"
	"testing"

	"property-search-be/internal/entity"
	"property-search-be/pkg/gazetteer"
	"property-search-be/pkg/geo"
)

const metersPerDegreeLat = 2 * math.Pi * 6371000 / 360

// stationAt places a station a given number of meters due north of the
// origin; for pure latitude offsets the haversine distance is the exact
// arc length, so the placement is meter-precise.
func stationAt(name, transitType string, origin geo.Coordinate, meters float64) *entity.Station {
	return &entity.Station{
		Name:        name,
		TransitType: transitType,
		Line:        "Test Line",
		Latitude:    origin.Latitude + meters/metersPerDegreeLat,
		Longitude:   origin.Longitude,
	}
}

var testOrigin = geo.Coordinate{Latitude: 3.1400, Longitude: 101.6900}

func TestProximityCutoff(t *testing.T) {
	tests := []struct {
		name        string
		meters      float64
		wantNear    bool
		wantMinutes int
	}{
		{"just inside cutoff", 1799, true, 22}, // 1799 / 83.3 = 21.596 -> 22
		{"just outside cutoff", 1801, false, 0},
		{"at the doorstep", 80, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gazetteer.New([]*entity.Station{
				stationAt("Lone Station", entity.TransitHeavyRail, testOrigin, tt.meters),
			})
			res, err := NewEngine(g).Proximity(testOrigin.Latitude, testOrigin.Longitude)
			if err != nil {
				t.Fatalf("Proximity() error = %v", err)
			}
			if res.IsNearTransport != tt.wantNear {
				t.Fatalf("IsNearTransport = %v, want %v", res.IsNearTransport, tt.wantNear)
			}
			if !tt.wantNear {
				if res.Nearest != nil {
					t.Errorf("Nearest should be nil when nothing is walkable")
				}
				return
			}
			if res.Nearest.WalkingMinutes != tt.wantMinutes {
				t.Errorf("WalkingMinutes = %d, want %d", res.Nearest.WalkingMinutes, tt.wantMinutes)
			}
		})
	}
}

func TestProximityOrderingAndPartition(t *testing.T) {
	g := gazetteer.New([]*entity.Station{
		stationAt("Far LRT", entity.TransitLightRail, testOrigin, 1500),
		stationAt("Near MRT", entity.TransitHeavyRail, testOrigin, 300),
		stationAt("Mid KTM", entity.TransitCommuterRail, testOrigin, 900),
		stationAt("Unreachable", entity.TransitMonorail, testOrigin, 5000),
	})

	res, err := NewEngine(g).Proximity(testOrigin.Latitude, testOrigin.Longitude)
	if err != nil {
		t.Fatalf("Proximity() error = %v", err)
	}

	if res.Nearest.Station.Name != "Near MRT" {
		t.Errorf("Nearest = %q, want Near MRT", res.Nearest.Station.Name)
	}
	if _, ok := res.ByType[entity.TransitMonorail]; ok {
		t.Errorf("station beyond cutoff must not appear in ByType")
	}

	// Every partition sorted by non-decreasing distance, all within cutoff,
	// walking time monotonic in distance.
	for transitType, stations := range res.ByType {
		prev := -1.0
		prevMinutes := -1
		for _, ns := range stations {
			if ns.DistanceMeters < prev {
				t.Errorf("%s partition not sorted: %f after %f", transitType, ns.DistanceMeters, prev)
			}
			if ns.DistanceMeters > WalkingRadiusMeters {
				t.Errorf("%s station beyond cutoff: %f", transitType, ns.DistanceMeters)
			}
			if ns.WalkingMinutes < prevMinutes {
				t.Errorf("walking time not monotonic: %d after %d", ns.WalkingMinutes, prevMinutes)
			}
			prev = ns.DistanceMeters
			prevMinutes = ns.WalkingMinutes
		}
	}
}

func TestProximityInvalidCoordinates(t *testing.T) {
	engine := NewEngine(gazetteer.New(nil))

	if _, err := engine.Proximity(95.0, 101.0); err != geo.ErrInvalidCoordinate {
		t.Errorf("latitude 95 error = %v, want ErrInvalidCoordinate", err)
	}
	if _, err := engine.Proximity(51.5, -0.12); err != geo.ErrOutOfServiceArea {
		t.Errorf("london error = %v, want ErrOutOfServiceArea", err)
	}
}

func TestProximityRadiusOverrideCap(t *testing.T) {
	g := gazetteer.New([]*entity.Station{
		stationAt("Distant", entity.TransitHeavyRail, testOrigin, 3000),
	})
	engine := NewEngine(g)

	// 3000m is reachable under the doubled cap...
	res, err := engine.ProximityWithRadius(testOrigin.Latitude, testOrigin.Longitude, 3500)
	if err != nil {
		t.Fatalf("ProximityWithRadius() error = %v", err)
	}
	if !res.IsNearTransport {
		t.Errorf("3000m station should be within a 3500m override")
	}

	// ...but an absurd override is capped at 2x the default
	res, err = engine.ProximityWithRadius(testOrigin.Latitude, testOrigin.Longitude, 50000)
	if err != nil {
		t.Fatalf("ProximityWithRadius() error = %v", err)
	}
	if res.RadiusMeters != WalkingRadiusMeters*MaxRadiusOverrideFactor {
		t.Errorf("RadiusMeters = %f, want capped %f", res.RadiusMeters, WalkingRadiusMeters*MaxRadiusOverrideFactor)
	}
}

func TestHasTypeWithin(t *testing.T) {
	g := gazetteer.New([]*entity.Station{
		stationAt("Near MRT", entity.TransitHeavyRail, testOrigin, 400),
	})
	res, _ := NewEngine(g).Proximity(testOrigin.Latitude, testOrigin.Longitude)

	if !res.HasTypeWithin(entity.TransitHeavyRail) {
		t.Errorf("expected heavy-rail within radius")
	}
	if !res.HasTypeWithin("") {
		t.Errorf("empty type should match any station")
	}
	if res.HasTypeWithin(entity.TransitMonorail) {
		t.Errorf("no monorail within radius")
	}
}
