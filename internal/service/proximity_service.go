package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"property-search-be/internal/dto"
	"property-search-be/internal/entity"
	"property-search-be/pkg/gazetteer"
	"property-search-be/pkg/transit"
)

// ErrUnknownTransitType marks a transit-type filter outside the fixed
// vocabulary.
var ErrUnknownTransitType = errors.New("unknown transit type")

type IProximityService interface {
	Proximity(ctx context.Context, lat, lng, radiusMeters float64, transitType string) (*dto.ProximityResponse, error)
	Stations(ctx context.Context, transitType, line string) (*dto.StationListResponse, error)
}

type proximityService struct {
	engine    *transit.Engine
	gazetteer *gazetteer.Gazetteer
}

func NewProximityService(engine *transit.Engine, g *gazetteer.Gazetteer) IProximityService {
	return &proximityService{
		engine:    engine,
		gazetteer: g,
	}
}

// Proximity returns the walkable stations around a coordinate. A
// non-empty transitType narrows the view to that type: the nearest
// station, the partition map and the near-transport flag all reflect the
// filtered set.
func (s *proximityService) Proximity(ctx context.Context, lat, lng, radiusMeters float64, transitType string) (*dto.ProximityResponse, error) {
	if transitType != "" && !entity.ValidTransitType(transitType) {
		return nil, fmt.Errorf("%w %q", ErrUnknownTransitType, transitType)
	}

	res, err := s.engine.ProximityWithRadius(lat, lng, radiusMeters)
	if err != nil {
		return nil, err
	}

	byType := res.ByType
	nearest := res.Nearest
	if transitType != "" {
		byType = make(map[string][]transit.NearbyStation, 1)
		nearest = nil
		if stations := res.ByType[transitType]; len(stations) > 0 {
			byType[transitType] = stations
			nearest = &stations[0]
		}
	}

	resp := &dto.ProximityResponse{
		IsNearTransport: res.HasTypeWithin(transitType),
		RadiusMeters:    res.RadiusMeters,
		ByType:          make(map[string][]dto.NearbyStationInfo, len(byType)),
	}
	if nearest != nil {
		info := toNearbyStationInfo(*nearest)
		resp.Nearest = &info
	}
	for t, stations := range byType {
		infos := make([]dto.NearbyStationInfo, 0, len(stations))
		for _, ns := range stations {
			infos = append(infos, toNearbyStationInfo(ns))
		}
		resp.ByType[t] = infos
	}
	return resp, nil
}

func (s *proximityService) Stations(ctx context.Context, transitType, line string) (*dto.StationListResponse, error) {
	if transitType != "" && !entity.ValidTransitType(transitType) {
		return nil, fmt.Errorf("%w %q", ErrUnknownTransitType, transitType)
	}

	var source []*entity.Station
	if transitType != "" {
		source = s.gazetteer.StationsByType(transitType)
	} else {
		source = s.gazetteer.Stations()
	}

	stations := make([]dto.StationInfo, 0, len(source))
	for _, st := range source {
		if line != "" && !strings.EqualFold(st.Line, line) {
			continue
		}
		stations = append(stations, toStationInfo(st))
	}

	return &dto.StationListResponse{
		Stations: stations,
		Total:    len(stations),
	}, nil
}

func toStationInfo(st *entity.Station) dto.StationInfo {
	return dto.StationInfo{
		Name:        st.Name,
		Line:        st.Line,
		TransitType: st.TransitType,
		Latitude:    st.Latitude,
		Longitude:   st.Longitude,
		Facilities:  st.Facilities,
	}
}

func toNearbyStationInfo(ns transit.NearbyStation) dto.NearbyStationInfo {
	return dto.NearbyStationInfo{
		Station:        toStationInfo(ns.Station),
		DistanceMeters: ns.DistanceMeters,
		WalkMinutes:    ns.WalkingMinutes,
	}
}
