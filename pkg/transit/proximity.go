package transit

import (
	"fmt"
	"math"
	"sort"
	"time"

	"property-search-be/internal/entity"
	"property-search-be/pkg/gazetteer"
	"property-search-be/pkg/geo"

	"github.com/patrickmn/go-cache"
)

const (
	// WalkingRadiusMeters is the cutoff beyond which a station is not
	// considered walkable.
	WalkingRadiusMeters = 1800.0

	// WalkingSpeedMetersPerMinute is the average pedestrian speed used to
	// convert distance to walking time (~5 km/h).
	WalkingSpeedMetersPerMinute = 83.3

	// MaxRadiusOverrideFactor caps caller-supplied radius overrides so the
	// full-scan engine stays bounded.
	MaxRadiusOverrideFactor = 2.0
)

// NearbyStation is one station within the walking radius.
type NearbyStation struct {
	Station        *entity.Station `json:"station"`
	DistanceMeters float64         `json:"distance_meters"`
	WalkingMinutes int             `json:"walking_minutes"`
}

// Result is the full proximity view for one coordinate.
type Result struct {
	IsNearTransport bool                       `json:"is_near_transport"`
	Nearest         *NearbyStation             `json:"nearest,omitempty"`
	ByType          map[string][]NearbyStation `json:"by_type"`
	RadiusMeters    float64                    `json:"radius_meters"`
}

// Engine computes walking proximity to gazetteer stations. It is a pure
// function of the input coordinate and the static catalog, so results are
// cached keyed by rounded coordinates.
type Engine struct {
	gazetteer *gazetteer.Gazetteer
	cache     *cache.Cache
}

func NewEngine(g *gazetteer.Gazetteer) *Engine {
	// Station positions are static for the process lifetime; the TTL only
	// bounds memory, not staleness.
	c := cache.New(30*time.Minute, 10*time.Minute)
	return &Engine{
		gazetteer: g,
		cache:     c,
	}
}

// Proximity computes the proximity result for a coordinate using the
// default walking radius.
func (e *Engine) Proximity(lat, lng float64) (*Result, error) {
	return e.ProximityWithRadius(lat, lng, WalkingRadiusMeters)
}

// ProximityWithRadius is Proximity with a caller-supplied radius override.
// The override is capped at MaxRadiusOverrideFactor times the default.
func (e *Engine) ProximityWithRadius(lat, lng, radiusMeters float64) (*Result, error) {
	origin := geo.Coordinate{Latitude: lat, Longitude: lng}
	if err := geo.Validate(origin); err != nil {
		return nil, err
	}

	if radiusMeters <= 0 {
		radiusMeters = WalkingRadiusMeters
	}
	if max := WalkingRadiusMeters * MaxRadiusOverrideFactor; radiusMeters > max {
		radiusMeters = max
	}

	key := cacheKey(lat, lng, radiusMeters)
	if x, found := e.cache.Get(key); found {
		return x.(*Result), nil
	}

	result := e.compute(origin, radiusMeters)
	e.cache.Set(key, result, cache.DefaultExpiration)
	return result, nil
}

func (e *Engine) compute(origin geo.Coordinate, radiusMeters float64) *Result {
	var within []NearbyStation
	for _, s := range e.gazetteer.Stations() {
		d := geo.Distance(origin, gazetteer.Coordinate(s))
		if d > radiusMeters {
			continue
		}
		within = append(within, NearbyStation{
			Station:        s,
			DistanceMeters: d,
			WalkingMinutes: WalkingMinutes(d),
		})
	}

	result := &Result{
		ByType:       make(map[string][]NearbyStation),
		RadiusMeters: radiusMeters,
	}
	if len(within) == 0 {
		return result
	}

	sort.SliceStable(within, func(i, j int) bool {
		return within[i].DistanceMeters < within[j].DistanceMeters
	})

	nearest := within[0]
	result.IsNearTransport = true
	result.Nearest = &nearest
	for _, ns := range within {
		t := ns.Station.TransitType
		result.ByType[t] = append(result.ByType[t], ns)
	}
	return result
}

// HasTypeWithin reports whether the result contains a station of the
// requested transit type; an empty type matches any station.
func (r *Result) HasTypeWithin(transitType string) bool {
	if !r.IsNearTransport {
		return false
	}
	if transitType == "" {
		return true
	}
	return len(r.ByType[transitType]) > 0
}

// WalkingMinutes converts meters to rounded walking minutes. Monotonic
// non-decreasing in distance.
func WalkingMinutes(distanceMeters float64) int {
	return int(math.Round(distanceMeters / WalkingSpeedMetersPerMinute))
}

// cacheKey rounds coordinates to 4 decimal places (~11m), collapsing
// jittered map coordinates onto one cache entry.
func cacheKey(lat, lng, radius float64) string {
	return fmt.Sprintf("%.4f:%.4f:%.0f", lat, lng, radius)
}
