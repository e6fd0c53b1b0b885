package mapper

import (
	"encoding/json"

	"property-search-be/internal/entity"
	"property-search-be/internal/model"

	"gorm.io/datatypes"
)

type StationMapper struct{}

func NewStationMapper() *StationMapper {
	return &StationMapper{}
}

func (m *StationMapper) ToEntity(s *model.Station) *entity.Station {
	if s == nil {
		return nil
	}

	var facilities []string
	if len(s.Facilities) > 0 {
		// Malformed JSON leaves facilities empty rather than failing the row
		_ = json.Unmarshal(s.Facilities, &facilities)
	}

	return &entity.Station{
		Id:          s.Id,
		Name:        s.Name,
		TransitType: s.TransitType,
		Line:        s.Line,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Facilities:  facilities,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *StationMapper) ToModel(s *entity.Station) *model.Station {
	if s == nil {
		return nil
	}

	var facilities datatypes.JSON
	if len(s.Facilities) > 0 {
		if b, err := json.Marshal(s.Facilities); err == nil {
			facilities = b
		}
	}

	return &model.Station{
		Id:          s.Id,
		Name:        s.Name,
		TransitType: s.TransitType,
		Line:        s.Line,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
		Facilities:  facilities,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *StationMapper) ToEntities(stations []*model.Station) []*entity.Station {
	entities := make([]*entity.Station, len(stations))
	for i, s := range stations {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
