package implementation

import (
	"context"

	"property-search-be/internal/entity"
	"property-search-be/internal/mapper"
	"property-search-be/internal/model"
	"property-search-be/internal/repository/contract"
	"property-search-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StationMapper
}

func NewStationRepository(db *gorm.DB) contract.StationRepository {
	return &StationRepositoryImpl{
		db:     db,
		mapper: mapper.NewStationMapper(),
	}
}

func (r *StationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StationRepositoryImpl) CreateBatch(ctx context.Context, stations []*entity.Station) error {
	if len(stations) == 0 {
		return nil
	}
	models := make([]*model.Station, len(stations))
	for i, s := range stations {
		models[i] = r.mapper.ToModel(s)
	}
	// Idempotent seeding: re-running the seeder updates coordinates in place
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "line"}},
			DoUpdates: clause.AssignmentColumns([]string{"latitude", "longitude", "transit_type", "facilities"}),
		}).
		Create(&models).Error
}

func (r *StationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Station, error) {
	var models []*model.Station
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *StationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Station{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
