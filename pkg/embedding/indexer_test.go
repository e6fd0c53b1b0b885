package embedding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/internal/repository/contract"
	"property-search-be/internal/repository/specification"
	"property-search-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type fakePropertyRepo struct {
	contract.PropertyRepository
	items       []*entity.Property
	updated     map[uuid.UUID][]float32
	missingSpec bool
}

func (r *fakePropertyRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Property, error) {
	for _, s := range specs {
		if _, ok := s.(specification.MissingEmbedding); ok {
			r.missingSpec = true
		}
	}
	return r.items, nil
}

func (r *fakePropertyRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	r.updated[id] = embedding
	return nil
}

type fakeUow struct {
	unitofwork.UnitOfWork
	repo contract.PropertyRepository
}

func (u *fakeUow) PropertyRepository() contract.PropertyRepository { return u.repo }

type fakeFactory struct {
	repo contract.PropertyRepository
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{repo: f.repo}
}

// failingProvider errors on texts containing the marker.
type failingProvider struct {
	failOn string
}

func (p *failingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	if p.failOn != "" && strings.Contains(text, p.failOn) {
		return nil, errors.New("provider unreachable")
	}
	return []float32{1, 0, 0}, nil
}

func newIndexer(repo *fakePropertyRepo, provider Provider) *Indexer {
	return NewIndexer(&fakeFactory{repo: repo}, provider, logger.NewNopLogger())
}

func TestBackfillEmbedsMissingListings(t *testing.T) {
	repo := &fakePropertyRepo{
		items: []*entity.Property{
			{Id: uuid.New(), Title: "Cozy 2BR near KLCC"},
			{Id: uuid.New(), Title: "Bangsar family home"},
		},
		updated: make(map[uuid.UUID][]float32),
	}

	n, err := newIndexer(repo, &failingProvider{}).Backfill(context.Background())
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Backfill() = %d, want 2", n)
	}
	if len(repo.updated) != 2 {
		t.Errorf("updated %d listings, want 2", len(repo.updated))
	}
	if !repo.missingSpec {
		t.Errorf("backfill must fetch only listings still missing a vector")
	}
}

func TestBackfillSkipsFailedGenerate(t *testing.T) {
	good := &entity.Property{Id: uuid.New(), Title: "Bangsar family home"}
	bad := &entity.Property{Id: uuid.New(), Title: "broken listing"}
	repo := &fakePropertyRepo{
		items:   []*entity.Property{bad, good},
		updated: make(map[uuid.UUID][]float32),
	}

	n, err := newIndexer(repo, &failingProvider{failOn: "broken"}).Backfill(context.Background())
	if err != nil {
		t.Fatalf("Backfill() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Backfill() = %d, want 1", n)
	}
	if _, ok := repo.updated[good.Id]; !ok {
		t.Errorf("healthy listing must still be embedded after a provider failure")
	}
	if _, ok := repo.updated[bad.Id]; ok {
		t.Errorf("failed listing must stay unembedded for the next run")
	}
}

func TestListingText(t *testing.T) {
	text := ListingText(&entity.Property{
		Title:        "Cozy 2BR near KLCC",
		PropertyType: entity.PropertyTypeCondominium,
		City:         "Kuala Lumpur",
	})
	if !strings.Contains(text, "Cozy 2BR near KLCC") || !strings.Contains(text, "Kuala Lumpur") {
		t.Errorf("ListingText missing fields: %q", text)
	}
	if strings.Contains(text, "\n\n") {
		t.Errorf("empty fields must be skipped: %q", text)
	}
}
