package query

import (
	"testing"

	"property-search-be/internal/entity"
	"property-search-be/pkg/gazetteer"
)

func newTestParser() *Parser {
	g := gazetteer.New([]*entity.Station{
		{Name: "KLCC", TransitType: entity.TransitLightRail, Line: "Kelana Jaya Line", Latitude: 3.1588, Longitude: 101.7133},
		{Name: "Bukit Bintang", TransitType: entity.TransitHeavyRail, Line: "Kajang Line", Latitude: 3.1462, Longitude: 101.7110},
	})
	return NewParser(g)
}

func TestParseReferenceQuery(t *testing.T) {
	// The canonical decision scenario.
	parsed := newTestParser().Parse("2 bedroom condo near MRT under RM3000", "")

	if parsed.Bedrooms == nil || *parsed.Bedrooms != 2 {
		t.Errorf("Bedrooms = %v, want 2", parsed.Bedrooms)
	}
	if parsed.PropertyType != entity.PropertyTypeCondominium {
		t.Errorf("PropertyType = %q, want condominium", parsed.PropertyType)
	}
	if parsed.ListingType != "" {
		t.Errorf("ListingType = %q, want unset", parsed.ListingType)
	}
	if parsed.MaxPrice == nil || *parsed.MaxPrice != 3000 {
		t.Errorf("MaxPrice = %v, want 3000", parsed.MaxPrice)
	}
	if parsed.Proximity == nil {
		t.Fatalf("Proximity = nil, want heavy-rail intent")
	}
	if parsed.Proximity.TransitType != entity.TransitHeavyRail {
		t.Errorf("Proximity.TransitType = %q, want heavy-rail", parsed.Proximity.TransitType)
	}
	if !parsed.Proximity.AnyTransit {
		t.Errorf("Proximity.AnyTransit = false, want true (no specific station)")
	}
}

func TestParseSlots(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		hint  string
		check func(t *testing.T, p ParsedQuery)
	}{
		{
			name: "bedroom count fused",
			text: "3br apartment",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Bedrooms == nil || *p.Bedrooms != 3 {
					t.Errorf("Bedrooms = %v, want 3", p.Bedrooms)
				}
				if p.PropertyType != entity.PropertyTypeApartment {
					t.Errorf("PropertyType = %q, want apartment", p.PropertyType)
				}
			},
		},
		{
			name: "thousands suffix",
			text: "house above 500k",
			check: func(t *testing.T, p ParsedQuery) {
				if p.MinPrice == nil || *p.MinPrice != 500000 {
					t.Errorf("MinPrice = %v, want 500000", p.MinPrice)
				}
			},
		},
		{
			name: "less than phrase",
			text: "studio less than 1,500",
			check: func(t *testing.T, p ParsedQuery) {
				if p.MaxPrice == nil || *p.MaxPrice != 1500 {
					t.Errorf("MaxPrice = %v, want 1500", p.MaxPrice)
				}
				if p.PropertyType != entity.PropertyTypeStudio {
					t.Errorf("PropertyType = %q, want studio", p.PropertyType)
				}
			},
		},
		{
			name: "rent keyword",
			text: "condo for rent",
			check: func(t *testing.T, p ParsedQuery) {
				if p.ListingType != entity.ListingTypeRent {
					t.Errorf("ListingType = %q, want rent", p.ListingType)
				}
			},
		},
		{
			name: "sale keyword",
			text: "terrace house to buy",
			check: func(t *testing.T, p ParsedQuery) {
				if p.ListingType != entity.ListingTypeSale {
					t.Errorf("ListingType = %q, want sale", p.ListingType)
				}
			},
		},
		{
			name: "conflicting keywords defer to mode hint",
			text: "rent to own sale listing",
			hint: entity.ListingTypeSale,
			check: func(t *testing.T, p ParsedQuery) {
				if p.ListingType != entity.ListingTypeSale {
					t.Errorf("ListingType = %q, want sale (hint wins)", p.ListingType)
				}
			},
		},
		{
			name: "mode hint as default",
			text: "2 bedroom condo",
			hint: entity.ListingTypeRent,
			check: func(t *testing.T, p ParsedQuery) {
				if p.ListingType != entity.ListingTypeRent {
					t.Errorf("ListingType = %q, want rent", p.ListingType)
				}
			},
		},
		{
			name: "resolved place",
			text: "apartment near KLCC",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Proximity == nil || p.Proximity.Place == nil {
					t.Fatalf("Proximity.Place = nil, want KLCC")
				}
				if p.Proximity.Place.Name != "KLCC" {
					t.Errorf("Place = %q, want KLCC", p.Proximity.Place.Name)
				}
			},
		},
		{
			name: "typed transit with place",
			text: "condo near MRT Bukit Bintang",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Proximity == nil {
					t.Fatalf("Proximity = nil")
				}
				if p.Proximity.TransitType != entity.TransitHeavyRail {
					t.Errorf("TransitType = %q, want heavy-rail", p.Proximity.TransitType)
				}
				if p.Proximity.Place == nil || p.Proximity.Place.Name != "Bukit Bintang" {
					t.Errorf("Place = %v, want Bukit Bintang", p.Proximity.Place)
				}
			},
		},
		{
			name: "unresolvable place degrades to text",
			text: "condo near Gotham Central",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Proximity != nil {
					t.Errorf("Proximity = %+v, want nil (degraded)", p.Proximity)
				}
				if p.FreeText != "Gotham Central" {
					t.Errorf("FreeText = %q, want place words kept", p.FreeText)
				}
			},
		},
		{
			name: "unresolvable place with transit scope keeps intent",
			text: "condo near LRT Gotham Central",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Proximity == nil || !p.Proximity.AnyTransit {
					t.Fatalf("Proximity = %+v, want any-transit light-rail", p.Proximity)
				}
				if p.Proximity.TransitType != entity.TransitLightRail {
					t.Errorf("TransitType = %q, want light-rail", p.Proximity.TransitType)
				}
			},
		},
		{
			name: "empty input",
			text: "",
			check: func(t *testing.T, p ParsedQuery) {
				if p.Bedrooms != nil || p.MaxPrice != nil || p.Proximity != nil || p.PropertyType != "" {
					t.Errorf("empty input should parse to empty query: %+v", p)
				}
			},
		},
		{
			name: "gibberish never fails",
			text: "?!? near under above br ,,,",
			check: func(t *testing.T, p ParsedQuery) {
				if p.MaxPrice != nil || p.MinPrice != nil {
					t.Errorf("no numeric bound should be set: %+v", p)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newTestParser().Parse(tt.text, tt.hint))
		})
	}
}

func TestParseFreeTextLeftover(t *testing.T) {
	p := newTestParser().Parse("cozy 2 bedroom condo with pool", "")
	if p.FreeText != "cozy with pool" {
		t.Errorf("FreeText = %q, want %q", p.FreeText, "cozy with pool")
	}
}
