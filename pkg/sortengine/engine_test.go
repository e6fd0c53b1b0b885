package sortengine

import (
	"testing"
	"time"

	"property-search-be/internal/entity"
)

func newTestEngine() *Engine {
	return NewEngine(NewMetricWindow(256), DefaultConfig())
}

func TestDecideStaticBands(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name         string
		sortType     SortType
		itemCount    int
		dataComplete bool
		want         Path
	}{
		{"remote-only sort type", SortRelevance, 10, true, PathRemote},
		{"distance always remote", SortDistance, 10, true, PathRemote},
		{"incomplete accumulation disallows local", SortPriceAsc, 30, false, PathRemote},
		{"small set always local", SortPriceDesc, 30, true, PathLocal},
		{"small set local despite history", SortPriceDesc, 30, true, PathLocal},
		{"medium set local", SortCreatedDesc, 180, true, PathLocal},
		{"ambiguous band defaults local without history", SortPriceAsc, 400, true, PathLocal},
		{"large set remote without history", SortPriceAsc, 5000, true, PathRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Decide(tt.sortType, tt.itemCount, tt.dataComplete); got != tt.want {
				t.Errorf("Decide(%s, %d, %v) = %s, want %s", tt.sortType, tt.itemCount, tt.dataComplete, got, tt.want)
			}
		})
	}
}

func TestDecideSmallSetIgnoresHistory(t *testing.T) {
	e := newTestEngine()
	// Pathological history: local looks terrible.
	for i := 0; i < 20; i++ {
		e.Record(SortPriceDesc, PathLocal, 30, time.Second)
		e.Record(SortPriceDesc, PathRemote, 30, time.Millisecond)
	}
	if got := e.Decide(SortPriceDesc, 30, true); got != PathLocal {
		t.Errorf("item count 30 must be local regardless of history, got %s", got)
	}
}

func TestDecideAmbiguousBandUsesHistory(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 10; i++ {
		e.Record(SortPriceAsc, PathLocal, 300, 40*time.Millisecond)
		e.Record(SortPriceAsc, PathRemote, 300, 5*time.Millisecond)
	}
	if got := e.Decide(SortPriceAsc, 300, true); got != PathRemote {
		t.Errorf("history favors remote in the 201-500 band, got %s", got)
	}

	// Flip the history for a different sort type.
	for i := 0; i < 10; i++ {
		e.Record(SortAreaAsc, PathLocal, 300, 2*time.Millisecond)
		e.Record(SortAreaAsc, PathRemote, 300, 60*time.Millisecond)
	}
	if got := e.Decide(SortAreaAsc, 300, true); got != PathLocal {
		t.Errorf("history favors local, got %s", got)
	}
}

func TestDecideLargeSetNeedsClearLocalWin(t *testing.T) {
	e := newTestEngine()
	// Local marginally faster: not clear enough, stay remote.
	for i := 0; i < 10; i++ {
		e.Record(SortPriceAsc, PathLocal, 800, 9*time.Millisecond)
		e.Record(SortPriceAsc, PathRemote, 800, 10*time.Millisecond)
	}
	if got := e.Decide(SortPriceAsc, 800, true); got != PathRemote {
		t.Errorf("marginal local win above large threshold should stay remote, got %s", got)
	}

	// Local clearly faster on another type.
	for i := 0; i < 10; i++ {
		e.Record(SortBedroomsAsc, PathLocal, 800, 2*time.Millisecond)
		e.Record(SortBedroomsAsc, PathRemote, 800, 50*time.Millisecond)
	}
	if got := e.Decide(SortBedroomsAsc, 800, true); got != PathLocal {
		t.Errorf("clear local win above large threshold should go local, got %s", got)
	}
}

func TestMetricWindowBounded(t *testing.T) {
	w := NewMetricWindow(8)
	for i := 0; i < 100; i++ {
		w.Record(Metric{SortType: SortPriceAsc, Path: PathLocal, Duration: time.Millisecond, Timestamp: time.Now()})
	}
	if w.Len() != 8 {
		t.Errorf("window Len = %d, want 8", w.Len())
	}
}

func TestMetricWindowExpiry(t *testing.T) {
	w := NewMetricWindow(8)
	w.Record(Metric{SortType: SortPriceAsc, Path: PathLocal, Duration: time.Second, Timestamp: time.Now().Add(-time.Hour)})
	w.Record(Metric{SortType: SortPriceAsc, Path: PathLocal, Duration: time.Millisecond, Timestamp: time.Now()})

	mean, samples := w.MeanDuration(SortPriceAsc, PathLocal, time.Now().Add(-10*time.Minute))
	if samples != 1 {
		t.Fatalf("samples = %d, want 1 (stale entry excluded)", samples)
	}
	if mean != time.Millisecond {
		t.Errorf("mean = %v, want 1ms", mean)
	}
}

func TestApplyLocalOrderings(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	items := func() []*entity.Property {
		return []*entity.Property{
			{Title: "a", Price: 2500, AreaSqft: 1000, Bedrooms: 3, CreatedAt: base.Add(2 * time.Hour)},
			{Title: "b", Price: 1200, AreaSqft: 600, Bedrooms: 1, CreatedAt: base},
			{Title: "c", Price: 1800, AreaSqft: 0, Bedrooms: 2, CreatedAt: base.Add(time.Hour)},
		}
	}

	t.Run("price ascending non-decreasing", func(t *testing.T) {
		set := items()
		if !ApplyLocal(set, SortPriceAsc) {
			t.Fatalf("ApplyLocal returned false")
		}
		for i := 1; i < len(set); i++ {
			if set[i].Price < set[i-1].Price {
				t.Errorf("price not non-decreasing at %d: %f < %f", i, set[i].Price, set[i-1].Price)
			}
		}
	})

	t.Run("price per area zero guard first", func(t *testing.T) {
		set := items()
		ApplyLocal(set, SortPricePerAreaAsc)
		if set[0].Title != "c" {
			t.Errorf("zero-area listing should sort first ascending, got %q", set[0].Title)
		}
	})

	t.Run("created descending", func(t *testing.T) {
		set := items()
		ApplyLocal(set, SortCreatedDesc)
		if set[0].Title != "a" || set[2].Title != "b" {
			t.Errorf("created desc order wrong: %q %q %q", set[0].Title, set[1].Title, set[2].Title)
		}
	})

	t.Run("remote-only type refused", func(t *testing.T) {
		set := items()
		if ApplyLocal(set, SortRelevance) {
			t.Errorf("relevance has no local comparator")
		}
	})
}

func TestSortLocalRecordsMetric(t *testing.T) {
	e := newTestEngine()
	set := []*entity.Property{{Price: 2}, {Price: 1}}
	if !e.SortLocal(set, SortPriceAsc) {
		t.Fatalf("SortLocal failed")
	}
	if _, samples := e.window.MeanDuration(SortPriceAsc, PathLocal, time.Time{}); samples != 1 {
		t.Errorf("samples = %d, want 1", samples)
	}
}
