package contract

import (
	"context"

	"property-search-be/internal/entity"
	"property-search-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Property, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}
