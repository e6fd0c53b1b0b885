package unitofwork

import (
	"context"

	"property-search-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PropertyRepository() contract.PropertyRepository
	StationRepository() contract.StationRepository
}
