package service

import (
	"context"
	"testing"
	"time"

	"property-search-be/internal/entity"
	"property-search-be/internal/pkg/logger"
	"property-search-be/pkg/accumulator"
	"property-search-be/pkg/query"
	"property-search-be/pkg/sortengine"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchKeyIgnoresPhrasing(t *testing.T) {
	bedrooms := 2
	maxPrice := 3000.0

	a := query.ParsedQuery{
		RawText:      "2 bedroom condo under RM3000",
		Bedrooms:     &bedrooms,
		MaxPrice:     &maxPrice,
		PropertyType: entity.PropertyTypeCondominium,
	}
	b := a
	b.RawText = "condo, 2 bedrooms, below 3000"

	assert.Equal(t, searchKey(a, sortengine.SortPriceAsc), searchKey(b, sortengine.SortPriceAsc),
		"same structured filter must share one accumulator key")
}

func TestSearchKeyVariesWithFilterAndSort(t *testing.T) {
	bedrooms := 2
	base := query.ParsedQuery{Bedrooms: &bedrooms}

	otherBedrooms := 3
	changed := query.ParsedQuery{Bedrooms: &otherBedrooms}

	assert.NotEqual(t, searchKey(base, sortengine.SortPriceAsc), searchKey(changed, sortengine.SortPriceAsc))
	assert.NotEqual(t, searchKey(base, sortengine.SortPriceAsc), searchKey(base, sortengine.SortPriceDesc))
}

func TestPageSlice(t *testing.T) {
	items := make([]*entity.Property, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, &entity.Property{Title: string(rune('a' + i)), CreatedAt: time.Now()})
	}

	assert.Len(t, pageSlice(items, 0, 2), 2)
	assert.Len(t, pageSlice(items, 2, 2), 1)
	assert.Empty(t, pageSlice(items, 3, 2))
	assert.Equal(t, "c", pageSlice(items, 1, 2)[0].Title)
}

func TestGetResultsDefersSortUntilComplete(t *testing.T) {
	ctx := context.Background()
	acc := accumulator.New(accumulator.NewMemoryStore(16))
	engine := sortengine.NewEngine(sortengine.NewMetricWindow(16), sortengine.DefaultConfig())
	svc := NewSearchService(nil, nil, acc, engine, nil, nil, nil, nil, logger.NewNopLogger(), 20)

	pricier := &entity.Property{Id: uuid.New(), Title: "pricier", Price: 900}
	cheaper := &entity.Property{Id: uuid.New(), Title: "cheaper", Price: 100}
	_, err := acc.Ingest(ctx, "k", []*entity.Property{pricier, cheaper}, false, nil)
	require.NoError(t, err)

	res, err := svc.GetResults(ctx, "k", string(sortengine.SortPriceAsc))
	require.NoError(t, err)
	assert.Equal(t, "pricier", res.Items[0].Title,
		"incomplete accumulation keeps delivery order instead of sorting a partial set")

	_, err = acc.Ingest(ctx, "k", nil, true, nil)
	require.NoError(t, err)

	res, err = svc.GetResults(ctx, "k", string(sortengine.SortPriceAsc))
	require.NoError(t, err)
	assert.Equal(t, "cheaper", res.Items[0].Title, "complete accumulation sorts locally")
}

func TestTopQueriesOrderAndFold(t *testing.T) {
	cs := NewConsumerService(nil, "test").(*consumerService)

	cs.record("condo near KLCC")
	cs.record("Condo Near KLCC")
	cs.record("studio bukit bintang")

	top := cs.TopQueries(5)
	if assert.Len(t, top, 2) {
		assert.Equal(t, "condo near KLCC", top[0], "case-folded duplicates count as one query, first casing wins")
		assert.Equal(t, "studio bukit bintang", top[1])
	}

	assert.Len(t, cs.TopQueries(1), 1)
}
