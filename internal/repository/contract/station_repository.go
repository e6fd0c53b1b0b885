package contract

import (
	"context"

	"property-search-be/internal/entity"
	"property-search-be/internal/repository/specification"
)

type StationRepository interface {
	CreateBatch(ctx context.Context, stations []*entity.Station) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Station, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
