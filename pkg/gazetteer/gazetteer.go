package gazetteer

import (
	"sort"
	"strings"

	"property-search-be/internal/entity"
	"property-search-be/pkg/geo"
)

// Gazetteer is an immutable in-memory catalog of transit stations and
// named places. It is built once at bootstrap from the station table and
// never mutated at query time, so lookups need no locking.
type Gazetteer struct {
	stations []*entity.Station
	byType   map[string][]*entity.Station
	byName   map[string]*entity.Station
}

func New(stations []*entity.Station) *Gazetteer {
	g := &Gazetteer{
		stations: stations,
		byType:   make(map[string][]*entity.Station),
		byName:   make(map[string]*entity.Station),
	}
	for _, s := range stations {
		g.byType[s.TransitType] = append(g.byType[s.TransitType], s)
		key := strings.ToLower(s.Name)
		if existing, ok := g.byName[key]; !ok || preferCanonical(s, existing) {
			g.byName[key] = s
		}
	}
	return g
}

// Stations returns every station in the catalog.
func (g *Gazetteer) Stations() []*entity.Station {
	return g.stations
}

// StationsByType returns stations of one transit type.
func (g *Gazetteer) StationsByType(transitType string) []*entity.Station {
	return g.byType[transitType]
}

// Size returns the number of catalogued stations.
func (g *Gazetteer) Size() int {
	return len(g.stations)
}

// Coordinate returns a station's position as a geo coordinate.
func Coordinate(s *entity.Station) geo.Coordinate {
	return geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Resolve looks a place-name span up against the catalog. Matching order:
// exact (case-insensitive), then substring containment in both directions
// so that abbreviations ("KL" for "KL Sentral") and over-long spans
// ("Bukit Bintang station") still resolve. Ties between substring matches
// are broken deterministically: shortest canonical name first, then
// lexical order.
func (g *Gazetteer) Resolve(name string) (*entity.Station, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, false
	}

	if s, ok := g.byName[needle]; ok {
		return s, true
	}

	var candidates []*entity.Station
	for _, s := range g.stations {
		canonical := strings.ToLower(s.Name)
		if strings.Contains(canonical, needle) || strings.Contains(needle, canonical) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		return preferCanonical(candidates[i], candidates[j])
	})
	return candidates[0], true
}

// preferCanonical reports whether a should win a resolution tie over b.
func preferCanonical(a, b *entity.Station) bool {
	if len(a.Name) != len(b.Name) {
		return len(a.Name) < len(b.Name)
	}
	return a.Name < b.Name
}
