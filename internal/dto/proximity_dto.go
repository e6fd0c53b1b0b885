package dto

type StationInfo struct {
	Name        string   `json:"name"`
	Line        string   `json:"line"`
	TransitType string   `json:"transit_type"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Facilities  []string `json:"facilities,omitempty"`
}

type NearbyStationInfo struct {
	Station        StationInfo `json:"station"`
	DistanceMeters float64     `json:"distance_meters"`
	WalkMinutes    int         `json:"walk_minutes"`
}

type ProximityResponse struct {
	IsNearTransport bool                           `json:"is_near_transport"`
	RadiusMeters    float64                        `json:"radius_meters"`
	Nearest         *NearbyStationInfo             `json:"nearest,omitempty"`
	ByType          map[string][]NearbyStationInfo `json:"by_type"`
}

type StationListResponse struct {
	Stations []StationInfo `json:"stations"`
	Total    int           `json:"total"`
}
