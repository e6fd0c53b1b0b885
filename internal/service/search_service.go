package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"property-search-be/internal/dto"
	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/pkg/accumulator"
	"property-search-be/pkg/events"
	pktNats "property-search-be/pkg/nats"
	"property-search-be/pkg/query"
	"property-search-be/pkg/search"
	"property-search-be/pkg/sortengine"
	"property-search-be/pkg/transit"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	GetResults(ctx context.Context, searchKey string, sort string) (*dto.AccumulatedResultsResponse, error)
	ClearResults(ctx context.Context, searchKey string) error
	Feedback(ctx context.Context, req *dto.FeedbackRequest) error
}

const trendingSuggestionPool = 5

type searchService struct {
	parser           *query.Parser
	orchestrator     *search.Orchestrator
	acc              *accumulator.Accumulator
	sortEngine       *sortengine.Engine
	proximityEngine  *transit.Engine
	consumerService  IConsumerService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
	pageSize         int
}

func NewSearchService(
	parser *query.Parser,
	orchestrator *search.Orchestrator,
	acc *accumulator.Accumulator,
	sortEngine *sortengine.Engine,
	proximityEngine *transit.Engine,
	consumerService IConsumerService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	pageSize int,
) ISearchService {
	if pageSize <= 0 {
		pageSize = search.DefaultConfig().PageSize
	}
	return &searchService{
		parser:           parser,
		orchestrator:     orchestrator,
		acc:              acc,
		sortEngine:       sortEngine,
		proximityEngine:  proximityEngine,
		consumerService:  consumerService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
		pageSize:         pageSize,
	}
}

func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	parsed := s.parser.Parse(req.Query, req.Mode)

	sortType := sortengine.SortType(req.Sort)
	if req.Sort == "" || !sortengine.ValidSortType(sortType) {
		sortType = sortengine.SortCreatedDesc
	}
	key := searchKey(parsed, sortType)

	trending := s.consumerService.TopQueries(trendingSuggestionPool)
	batch, err := s.orchestrator.Search(ctx, parsed, req.Page, sortType, trending)
	if err != nil {
		return nil, err
	}

	state, err := s.acc.Ingest(ctx, key, batch.Items, batch.IsFinal, &batch.Total)
	if err != nil {
		return nil, err
	}

	resp := &dto.SearchResponse{
		SearchKey:      key,
		Filter:         toParsedFilter(parsed),
		Total:          batch.Total,
		Accumulated:    len(state.Items),
		Page:           req.Page,
		PageSize:       s.pageSize,
		Complete:       state.Complete,
		Sort:           string(sortType),
		Broadened:      batch.Broadened,
		DroppedFilters: batch.DroppedFilters,
		Suggestions:    batch.Suggestions,
	}

	items, sortedLocally := s.sortedPage(ctx, parsed, state, req.Page, sortType)
	resp.Items = s.toListingCards(items, parsed)
	resp.SortedLocally = sortedLocally

	s.publishSearchPerformed(ctx, parsed.RawText, batch.Total, batch.Broadened)
	return resp, nil
}

// sortedPage returns one display page ordered per sortType. The path
// decision is adaptive: small complete sets sort in-process over the
// accumulated view, everything else re-asks the store for a sorted page.
// A failing remote sort degrades to recency over the accumulated items
// rather than failing the search.
func (s *searchService) sortedPage(ctx context.Context, parsed query.ParsedQuery, state *accumulator.State, page int, sortType sortengine.SortType) ([]*entity.Property, bool) {
	path := s.sortEngine.Decide(sortType, len(state.Items), state.Complete)

	if path == sortengine.PathLocal {
		sorted := make([]*entity.Property, len(state.Items))
		copy(sorted, state.Items)
		s.sortEngine.SortLocal(sorted, sortType)
		return pageSlice(sorted, page, s.pageSize), true
	}

	start := time.Now()
	items, err := s.orchestrator.FetchSorted(ctx, parsed, page, sortType)
	if err != nil {
		s.sysLogger.Error("search", "remote sort failed, serving local recency order", map[string]interface{}{
			"sort":  string(sortType),
			"error": err.Error(),
		})
		sorted := make([]*entity.Property, len(state.Items))
		copy(sorted, state.Items)
		s.sortEngine.SortLocal(sorted, sortengine.SortCreatedDesc)
		return pageSlice(sorted, page, s.pageSize), true
	}

	s.sortEngine.Record(sortType, sortengine.PathRemote, len(state.Items), time.Since(start))
	return items, false
}

func (s *searchService) GetResults(ctx context.Context, searchKey string, sort string) (*dto.AccumulatedResultsResponse, error) {
	state, ok, err := s.acc.Read(ctx, searchKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no accumulated results for key %s", searchKey)
	}

	// Re-sorting the progressive view is subject to the same engine
	// decision as the search path: an incomplete accumulation keeps its
	// delivery order instead of presenting a partial set as sorted.
	items := make([]*entity.Property, len(state.Items))
	copy(items, state.Items)
	if sortType := sortengine.SortType(sort); sortengine.HasLocalComparator(sortType) &&
		s.sortEngine.Decide(sortType, len(items), state.Complete) == sortengine.PathLocal {
		s.sortEngine.SortLocal(items, sortType)
	}

	return &dto.AccumulatedResultsResponse{
		SearchKey:   searchKey,
		Items:       s.toListingCards(items, query.ParsedQuery{}),
		Accumulated: len(state.Items),
		Total:       state.TotalHint,
		Complete:    state.Complete,
		UpdatedAt:   state.UpdatedAt,
	}, nil
}

func (s *searchService) ClearResults(ctx context.Context, searchKey string) error {
	return s.acc.Clear(ctx, searchKey)
}

func (s *searchService) Feedback(ctx context.Context, req *dto.FeedbackRequest) error {
	if s.eventPublisher == nil {
		return nil
	}
	event := events.NewListingViewed(req.ListingId.String(), req.SearchKey, req.Action)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.sysLogger.Warn("search", "failed to publish feedback event", map[string]interface{}{
			"listing_id": req.ListingId.String(),
			"error":      err.Error(),
		})
	}
	return nil
}

// publishSearchPerformed fans the outcome out to the trending consumer
// (in-process bus) and the analytics stream (NATS). Both are best-effort.
func (s *searchService) publishSearchPerformed(ctx context.Context, rawQuery string, total int64, broadened bool) {
	payload, err := json.Marshal(dto.SearchPerformedMessage{
		Query:       rawQuery,
		ResultCount: total,
		Broadened:   broadened,
	})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.sysLogger.Warn("search", "failed to publish search message", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		event := events.NewSearchPerformed(rawQuery, total, broadened)
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.sysLogger.Warn("search", "failed to publish analytics event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func (s *searchService) toListingCards(items []*entity.Property, parsed query.ParsedQuery) []dto.ListingCard {
	annotate := parsed.Proximity != nil && s.proximityEngine != nil

	cards := make([]dto.ListingCard, 0, len(items))
	for _, item := range items {
		card := dto.ListingCard{
			Id:           item.Id,
			Title:        item.Title,
			Address:      item.Address,
			City:         item.City,
			PropertyType: item.PropertyType,
			ListingType:  item.ListingType,
			Price:        item.Price,
			Bedrooms:     item.Bedrooms,
			Bathrooms:    item.Bathrooms,
			AreaSqft:     item.AreaSqft,
			Latitude:     item.Latitude,
			Longitude:    item.Longitude,
			ImageURL:     item.ImageURL,
			CreatedAt:    item.CreatedAt,
			UpdatedAt:    item.UpdatedAt,
		}
		if annotate {
			if res, err := s.proximityEngine.Proximity(item.Latitude, item.Longitude); err == nil && res.Nearest != nil {
				walk := res.Nearest.WalkingMinutes
				card.NearestStation = res.Nearest.Station.Name
				card.WalkMinutes = &walk
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// searchKey derives the accumulator key from the structured filter and
// the sort, not the raw text, so trivially different phrasings of the
// same filter share one accumulated view.
func searchKey(parsed query.ParsedQuery, sortType sortengine.SortType) string {
	canonical := fmt.Sprintf("bed=%v|min=%v|max=%v|ptype=%s|ltype=%s|near=%s|place=%s|text=%s|sort=%s",
		derefInt(parsed.Bedrooms),
		derefFloat(parsed.MinPrice),
		derefFloat(parsed.MaxPrice),
		parsed.PropertyType,
		parsed.ListingType,
		proximitySlot(parsed),
		placeSlot(parsed),
		parsed.FreeText,
		sortType,
	)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:16])
}

func proximitySlot(parsed query.ParsedQuery) string {
	if parsed.Proximity == nil {
		return ""
	}
	if parsed.Proximity.AnyTransit && parsed.Proximity.TransitType == "" {
		return "any"
	}
	return parsed.Proximity.TransitType
}

func placeSlot(parsed query.ParsedQuery) string {
	if parsed.Proximity == nil || parsed.Proximity.Place == nil {
		return ""
	}
	return parsed.Proximity.Place.Name
}

func toParsedFilter(parsed query.ParsedQuery) dto.ParsedFilter {
	f := dto.ParsedFilter{
		Bedrooms:     parsed.Bedrooms,
		MinPrice:     parsed.MinPrice,
		MaxPrice:     parsed.MaxPrice,
		PropertyType: parsed.PropertyType,
		ListingType:  parsed.ListingType,
		FreeText:     parsed.FreeText,
	}
	if parsed.Proximity != nil {
		f.NearTransit = proximitySlot(parsed)
		f.NearPlace = placeSlot(parsed)
	}
	return f
}

func pageSlice(items []*entity.Property, page, pageSize int) []*entity.Property {
	start := page * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func derefInt(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func derefFloat(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
