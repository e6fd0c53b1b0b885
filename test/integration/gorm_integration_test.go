package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"property-search-be/internal/entity"
	"property-search-be/internal/repository/specification"
	"property-search-be/internal/repository/unitofwork"
	"property-search-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.PropertyRepository())
	assert.NotNil(t, uow.StationRepository())
}

func TestPropertyRepositoryRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	repo := uow.PropertyRepository()

	listing := &entity.Property{
		Id:           uuid.New(),
		Title:        "Integration test listing",
		PropertyType: entity.PropertyTypeCondominium,
		ListingType:  entity.ListingTypeRent,
		Price:        2500,
		Bedrooms:     2,
		AreaSqft:     900,
		Latitude:     3.1570,
		Longitude:    101.7145,
		CreatedAt:    time.Now(),
	}

	if err := repo.Create(ctx, listing); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer repo.Delete(ctx, listing.Id)

	found, err := repo.FindOne(ctx, specification.ByID{ID: listing.Id})
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.Equal(t, listing.Title, found.Title)
		assert.Equal(t, listing.Bedrooms, found.Bedrooms)
	}

	count, err := repo.Count(ctx,
		specification.ByListingType{Type: entity.ListingTypeRent},
		specification.PriceAtMost{Max: 3000},
	)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, count, int64(1))
}
