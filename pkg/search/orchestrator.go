package search

import (
	"context"
	"time"

	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/internal/repository/contract"
	"property-search-be/internal/repository/specification"
	"property-search-be/internal/repository/unitofwork"
	"property-search-be/pkg/embedding"
	"property-search-be/pkg/query"
	"property-search-be/pkg/sortengine"
	"property-search-be/pkg/transit"
)

// Orchestrator turns a parsed query into a candidate result batch,
// broadening the filter once when the initial pass comes back empty.
type Orchestrator struct {
	uowFactory unitofwork.RepositoryFactory
	proximity  *transit.Engine
	embedder   embedding.Provider
	logger     logger.ILogger
	cfg        Config
}

// Config encapsulates search parameters
type Config struct {
	PageSize      int
	RemoteTimeout time.Duration
	// OverfetchFactor covers candidates lost to the post-fetch proximity
	// filter when the intent is "near any station" rather than a point.
	OverfetchFactor int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		PageSize:        20,
		RemoteTimeout:   5 * time.Second,
		OverfetchFactor: 3,
	}
}

func NewOrchestrator(
	uowFactory unitofwork.RepositoryFactory,
	proximityEngine *transit.Engine,
	embedder embedding.Provider,
	sysLogger logger.ILogger,
	cfg Config,
) *Orchestrator {
	if cfg.PageSize <= 0 {
		cfg = DefaultConfig()
	}
	return &Orchestrator{
		uowFactory: uowFactory,
		proximity:  proximityEngine,
		embedder:   embedder,
		logger:     sysLogger,
		cfg:        cfg,
	}
}

// ResultBatch is one delivered page of candidates plus the metadata the
// accumulator and the caller need.
type ResultBatch struct {
	Items           []*entity.Property `json:"items"`
	Total           int64              `json:"total"`
	Page            int                `json:"page"`
	PageSize        int                `json:"page_size"`
	IsFinal         bool               `json:"is_final"`
	Broadened       bool               `json:"broadened"`
	DroppedFilters  []string           `json:"dropped_filters,omitempty"`
	Suggestions     []string           `json:"suggestions,omitempty"`
}

// Search executes the filter built from parsed against the property
// store. A zero-result first page triggers one broadening pass, dropping
// the tightest numeric constraint first (price, then bedrooms); if that
// still finds nothing the batch carries suggestions instead of items.
func (o *Orchestrator) Search(ctx context.Context, parsed query.ParsedQuery, page int, sortType sortengine.SortType, trending []string) (*ResultBatch, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PropertyRepository()

	batch, err := o.fetch(ctx, repo, parsed, page, sortType)
	if err != nil {
		return nil, err
	}
	if len(batch.Items) > 0 || page > 0 {
		return batch, nil
	}

	// Broadening pass: price first, then bedrooms.
	broadened := parsed
	var dropped []string
	if broadened.MinPrice != nil || broadened.MaxPrice != nil {
		broadened.MinPrice, broadened.MaxPrice = nil, nil
		dropped = append(dropped, "price")

		batch, err = o.fetch(ctx, repo, broadened, page, sortType)
		if err != nil {
			return nil, err
		}
	}
	if len(batch.Items) == 0 && broadened.Bedrooms != nil {
		broadened.Bedrooms = nil
		dropped = append(dropped, "bedrooms")

		batch, err = o.fetch(ctx, repo, broadened, page, sortType)
		if err != nil {
			return nil, err
		}
	}

	batch.Broadened = len(dropped) > 0
	batch.DroppedFilters = dropped
	if len(batch.Items) == 0 {
		batch.Suggestions = Suggestions(parsed, trending)
	}
	return batch, nil
}

// FetchSorted asks the backing store for one pre-sorted page: the remote
// sort path. Time-bounded; the caller falls back to a local ordering on
// failure.
func (o *Orchestrator) FetchSorted(ctx context.Context, parsed query.ParsedQuery, page int, sortType sortengine.SortType) ([]*entity.Property, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	items, _, err := o.fetchItems(ctx, uow.PropertyRepository(), parsed, page, sortType)
	return items, err
}

func (o *Orchestrator) fetch(ctx context.Context, repo contract.PropertyRepository, parsed query.ParsedQuery, page int, sortType sortengine.SortType) (*ResultBatch, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.RemoteTimeout)
	defer cancel()

	filterSpecs := o.filterSpecs(parsed)
	total, err := repo.Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	items, fetched, err := o.fetchItems(ctx, repo, parsed, page, sortType)
	if err != nil {
		return nil, err
	}

	// Finality comes from the pre-filter fetch: a page shrunk by the
	// proximity post-filter can still have matches at later offsets.
	limit := o.pageLimit(parsed)
	isFinal := fetched < limit || int64((page+1)*limit) >= total
	return &ResultBatch{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: o.cfg.PageSize,
		IsFinal:  isFinal,
	}, nil
}

// fetchItems returns one page of candidates plus the pre-filter fetch
// size, which the caller needs to judge whether the store is exhausted.
func (o *Orchestrator) fetchItems(ctx context.Context, repo contract.PropertyRepository, parsed query.ParsedQuery, page int, sortType sortengine.SortType) ([]*entity.Property, int, error) {
	specs := o.filterSpecs(parsed)
	specs = append(specs, o.orderSpec(ctx, parsed, sortType))

	limit := o.pageLimit(parsed)
	specs = append(specs, specification.Pagination{
		Limit:  limit,
		Offset: page * limit,
	})

	items, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	fetched := len(items)

	if parsed.Proximity != nil && parsed.Proximity.Place == nil {
		items = o.filterByProximity(items, parsed.Proximity)
		if len(items) > o.cfg.PageSize {
			items = items[:o.cfg.PageSize]
		}
	}
	return items, fetched, nil
}

// pageLimit is the per-page fetch size: overfetched when a post-fetch
// proximity filter will shrink the page.
func (o *Orchestrator) pageLimit(parsed query.ParsedQuery) int {
	if parsed.Proximity != nil && parsed.Proximity.Place == nil {
		return o.cfg.PageSize * o.cfg.OverfetchFactor
	}
	return o.cfg.PageSize
}

// filterSpecs maps the parsed slots onto store predicates.
func (o *Orchestrator) filterSpecs(parsed query.ParsedQuery) []specification.Specification {
	var specs []specification.Specification

	if parsed.ListingType != "" {
		specs = append(specs, specification.ByListingType{Type: parsed.ListingType})
	}
	if parsed.PropertyType != "" {
		specs = append(specs, specification.ByPropertyType{Type: parsed.PropertyType})
	}
	if parsed.Bedrooms != nil {
		specs = append(specs, specification.ByBedrooms{Count: *parsed.Bedrooms})
	}
	if parsed.MaxPrice != nil {
		specs = append(specs, specification.PriceAtMost{Max: *parsed.MaxPrice})
	}
	if parsed.MinPrice != nil {
		specs = append(specs, specification.PriceAtLeast{Min: *parsed.MinPrice})
	}
	if parsed.Proximity != nil && parsed.Proximity.Place != nil {
		specs = append(specs, specification.WithinRadius{
			Latitude:     parsed.Proximity.Place.Latitude,
			Longitude:    parsed.Proximity.Place.Longitude,
			RadiusMeters: transit.WalkingRadiusMeters,
		})
	}
	if parsed.FreeText != "" {
		specs = append(specs, specification.TextQuery{Query: parsed.FreeText})
	}
	return specs
}

// orderSpec resolves the server-side ordering for a sort type. Remote
// orderings that cannot be computed (no embedder, no reference point)
// degrade to creation-time descending rather than failing the request.
func (o *Orchestrator) orderSpec(ctx context.Context, parsed query.ParsedQuery, sortType sortengine.SortType) specification.Specification {
	recency := specification.OrderBy{Field: "created_at", Desc: true}

	switch sortType {
	case sortengine.SortRelevance:
		if o.embedder == nil || parsed.RawText == "" {
			return recency
		}
		vec, err := o.embedder.Generate(ctx, parsed.RawText)
		if err != nil {
			o.logger.Warn("search", "relevance embedding failed, falling back to recency", map[string]interface{}{
				"error": err.Error(),
			})
			return recency
		}
		return specification.OrderByRelevance{QueryEmbedding: vec}

	case sortengine.SortDistance:
		if parsed.Proximity != nil && parsed.Proximity.Place != nil {
			return specification.OrderByDistance{
				Latitude:  parsed.Proximity.Place.Latitude,
				Longitude: parsed.Proximity.Place.Longitude,
			}
		}
		return recency

	case sortengine.SortPriceAsc:
		return specification.OrderBy{Field: "price"}
	case sortengine.SortPriceDesc:
		return specification.OrderBy{Field: "price", Desc: true}
	case sortengine.SortAreaAsc:
		return specification.OrderBy{Field: "area_sqft"}
	case sortengine.SortAreaDesc:
		return specification.OrderBy{Field: "area_sqft", Desc: true}
	case sortengine.SortBedroomsAsc:
		return specification.OrderBy{Field: "bedrooms"}
	case sortengine.SortBedroomsDesc:
		return specification.OrderBy{Field: "bedrooms", Desc: true}
	case sortengine.SortPricePerAreaAsc:
		return specification.OrderByPricePerArea{}
	case sortengine.SortPricePerAreaDesc:
		return specification.OrderByPricePerArea{Desc: true}
	case sortengine.SortCreatedAsc:
		return specification.OrderBy{Field: "created_at"}
	default:
		return recency
	}
}

// filterByProximity keeps candidates whose ProximityResult contains a
// station of the requested type within the walking cutoff.
func (o *Orchestrator) filterByProximity(items []*entity.Property, intent *query.ProximityIntent) []*entity.Property {
	kept := items[:0]
	for _, item := range items {
		res, err := o.proximity.Proximity(item.Latitude, item.Longitude)
		if err != nil {
			// Malformed listing coordinates are a data bug: skip the
			// listing, keep the query alive.
			o.logger.Warn("search", "listing has invalid coordinates", map[string]interface{}{
				"listing_id": item.Id.String(),
				"error":      err.Error(),
			})
			continue
		}
		if res.HasTypeWithin(intent.TransitType) {
			kept = append(kept, item)
		}
	}
	return kept
}
