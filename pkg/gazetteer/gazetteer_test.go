package gazetteer

import (
	"testing"

	"property-search-be/internal/entity"
)

func testStations() []*entity.Station {
	return []*entity.Station{
		{Name: "KL Sentral", TransitType: entity.TransitHeavyRail, Line: "Kajang Line", Latitude: 3.1338, Longitude: 101.6869},
		{Name: "KLCC", TransitType: entity.TransitLightRail, Line: "Kelana Jaya Line", Latitude: 3.1588, Longitude: 101.7133},
		{Name: "Bukit Bintang", TransitType: entity.TransitHeavyRail, Line: "Kajang Line", Latitude: 3.1462, Longitude: 101.7110},
		{Name: "Bandar Utama", TransitType: entity.TransitHeavyRail, Line: "Kajang Line", Latitude: 3.1465, Longitude: 101.6170},
		{Name: "Subang Jaya", TransitType: entity.TransitCommuterRail, Line: "Port Klang Line", Latitude: 3.0846, Longitude: 101.5881},
	}
}

func TestResolve(t *testing.T) {
	g := New(testStations())

	tests := []struct {
		name     string
		query    string
		want     string
		wantOk   bool
	}{
		{"exact match", "KLCC", "KLCC", true},
		{"exact case-insensitive", "kl sentral", "KL Sentral", true},
		{"needle inside canonical", "bintang", "Bukit Bintang", true},
		{"canonical inside needle", "bukit bintang station", "Bukit Bintang", true},
		// "KL" is a substring of KLCC, KL Sentral; shortest canonical wins
		{"ambiguous abbreviation", "KL", "KLCC", true},
		{"unresolvable", "Gotham Central", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Resolve(tt.query)
			if ok != tt.wantOk {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.query, ok, tt.wantOk)
			}
			if ok && got.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.query, got.Name, tt.want)
			}
		})
	}
}

func TestResolveDeterministicTieBreak(t *testing.T) {
	// Two stations of equal-length names both containing the needle:
	// lexical order must decide, regardless of insertion order.
	stations := []*entity.Station{
		{Name: "Taman Abc", TransitType: entity.TransitLightRail},
		{Name: "Taman Abd", TransitType: entity.TransitLightRail},
	}
	forward, _ := New(stations).Resolve("taman")
	backward, _ := New([]*entity.Station{stations[1], stations[0]}).Resolve("taman")

	if forward.Name != "Taman Abc" || backward.Name != "Taman Abc" {
		t.Errorf("tie-break not deterministic: %q vs %q", forward.Name, backward.Name)
	}
}

func TestStationsByType(t *testing.T) {
	g := New(testStations())
	if got := len(g.StationsByType(entity.TransitHeavyRail)); got != 3 {
		t.Errorf("heavy-rail count = %d, want 3", got)
	}
	if got := len(g.StationsByType(entity.TransitMonorail)); got != 0 {
		t.Errorf("monorail count = %d, want 0", got)
	}
}
