package sortengine

import (
	"sort"

	"property-search-be/internal/entity"
)

// SortType identifies an ordering over listings.
type SortType string

const (
	SortCreatedAsc       SortType = "created_asc"
	SortCreatedDesc      SortType = "created_desc"
	SortPriceAsc         SortType = "price_asc"
	SortPriceDesc        SortType = "price_desc"
	SortAreaAsc          SortType = "area_asc"
	SortAreaDesc         SortType = "area_desc"
	SortBedroomsAsc      SortType = "bedrooms_asc"
	SortBedroomsDesc     SortType = "bedrooms_desc"
	SortPricePerAreaAsc  SortType = "price_per_area_asc"
	SortPricePerAreaDesc SortType = "price_per_area_desc"

	// Remote-only orderings: the backing store computes these, no local
	// comparator exists.
	SortRelevance SortType = "relevance"
	SortDistance  SortType = "distance"
)

// comparators holds the deterministic local orderings. Derived
// price-per-area uses the zero-area guard from the entity method.
var comparators = map[SortType]func(a, b *entity.Property) bool{
	SortCreatedAsc:  func(a, b *entity.Property) bool { return a.CreatedAt.Before(b.CreatedAt) },
	SortCreatedDesc: func(a, b *entity.Property) bool { return b.CreatedAt.Before(a.CreatedAt) },
	SortPriceAsc:    func(a, b *entity.Property) bool { return a.Price < b.Price },
	SortPriceDesc:   func(a, b *entity.Property) bool { return a.Price > b.Price },
	SortAreaAsc:     func(a, b *entity.Property) bool { return a.AreaSqft < b.AreaSqft },
	SortAreaDesc:    func(a, b *entity.Property) bool { return a.AreaSqft > b.AreaSqft },
	SortBedroomsAsc: func(a, b *entity.Property) bool { return a.Bedrooms < b.Bedrooms },
	SortBedroomsDesc: func(a, b *entity.Property) bool {
		return a.Bedrooms > b.Bedrooms
	},
	SortPricePerAreaAsc: func(a, b *entity.Property) bool {
		return a.PricePerArea() < b.PricePerArea()
	},
	SortPricePerAreaDesc: func(a, b *entity.Property) bool {
		return a.PricePerArea() > b.PricePerArea()
	},
}

// HasLocalComparator reports whether the sort type can run in-process.
func HasLocalComparator(sortType SortType) bool {
	_, ok := comparators[sortType]
	return ok
}

// ValidSortType reports whether the sort type is known at all.
func ValidSortType(sortType SortType) bool {
	if HasLocalComparator(sortType) {
		return true
	}
	return sortType == SortRelevance || sortType == SortDistance
}

// ApplyLocal sorts items in place with the local comparator. Stable, so
// equal keys keep their accumulated order.
func ApplyLocal(items []*entity.Property, sortType SortType) bool {
	less, ok := comparators[sortType]
	if !ok {
		return false
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
	return true
}
