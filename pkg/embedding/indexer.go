package embedding

import (
	"context"
	"strings"

	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/internal/repository/specification"
	"property-search-be/internal/repository/unitofwork"
)

// Indexer populates the embedding column so the relevance ordering has
// vectors to compare against. It runs after seeding and in the
// background at startup; a listing the provider fails on is left NULL
// and picked up again on the next run.
type Indexer struct {
	uowFactory unitofwork.RepositoryFactory
	provider   Provider
	logger     logger.ILogger
}

func NewIndexer(uowFactory unitofwork.RepositoryFactory, provider Provider, sysLogger logger.ILogger) *Indexer {
	return &Indexer{
		uowFactory: uowFactory,
		provider:   provider,
		logger:     sysLogger,
	}
}

// Backfill embeds every listing still missing a vector and returns how
// many were embedded.
func (ix *Indexer) Backfill(ctx context.Context) (int, error) {
	uow := ix.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PropertyRepository()

	items, err := repo.FindAll(ctx, specification.MissingEmbedding{})
	if err != nil {
		return 0, err
	}

	embedded := 0
	for _, item := range items {
		vec, err := ix.provider.Generate(ctx, ListingText(item))
		if err != nil {
			ix.logger.Warn("embedding", "failed to embed listing", map[string]interface{}{
				"listing_id": item.Id.String(),
				"error":      err.Error(),
			})
			continue
		}
		if err := repo.UpdateEmbedding(ctx, item.Id, vec); err != nil {
			return embedded, err
		}
		embedded++
	}
	return embedded, nil
}

// ListingText is the canonical text embedded for a listing: the fields a
// searcher's free text would describe.
func ListingText(p *entity.Property) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Title, p.Description, p.PropertyType, p.City} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
