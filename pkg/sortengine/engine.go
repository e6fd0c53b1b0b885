package sortengine

import (
	"time"

	"property-search-be/internal/entity"
)

// Config holds the static decision thresholds. The policy is two-stage:
// static thresholds first, historical comparison only in the ambiguous
// middle band, so metric state never affects clear-cut requests.
type Config struct {
	SmallThreshold  int           // at or below: always local
	MediumThreshold int           // at or below: local by default
	LargeThreshold  int           // at or below: consult history
	HistoryWindow   time.Duration // how far back metrics count
	ClearFactor     float64       // how much faster local must be to win above LargeThreshold
}

func DefaultConfig() Config {
	return Config{
		SmallThreshold:  50,
		MediumThreshold: 200,
		LargeThreshold:  500,
		HistoryWindow:   10 * time.Minute,
		ClearFactor:     2.0,
	}
}

// Engine decides, per sort request, whether to order the materialized
// result set in-process or ask the backing store for a sorted page.
type Engine struct {
	window *MetricWindow
	cfg    Config
	now    func() time.Time
}

func NewEngine(window *MetricWindow, cfg Config) *Engine {
	if cfg.SmallThreshold <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		window: window,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Decide returns the execution path for one sort request.
func (e *Engine) Decide(sortType SortType, itemCount int, dataComplete bool) Path {
	// 1. No local comparator: the store is the only one who can order this.
	if !HasLocalComparator(sortType) {
		return PathRemote
	}

	// 2. Accumulation still in flight: a local sort would silently omit
	// not-yet-arrived items.
	if !dataComplete {
		return PathRemote
	}

	// 3-4. Small and medium sets: fixed local cost is negligible.
	if itemCount <= e.cfg.MediumThreshold {
		return PathLocal
	}

	since := e.now().Add(-e.cfg.HistoryWindow)
	localMean, localSamples := e.window.MeanDuration(sortType, PathLocal, since)
	remoteMean, remoteSamples := e.window.MeanDuration(sortType, PathRemote, since)

	// 5. Ambiguous band: pick the historically faster path, local when
	// history is silent.
	if itemCount <= e.cfg.LargeThreshold {
		if localSamples == 0 || remoteSamples == 0 {
			return PathLocal
		}
		if remoteMean < localMean {
			return PathRemote
		}
		return PathLocal
	}

	// 6. Large sets: remote, unless history clearly favors local.
	if localSamples > 0 && remoteSamples > 0 &&
		float64(localMean)*e.cfg.ClearFactor < float64(remoteMean) {
		return PathLocal
	}
	return PathRemote
}

// Record stores the outcome of one sort invocation in the rolling window.
func (e *Engine) Record(sortType SortType, path Path, itemCount int, duration time.Duration) {
	e.window.Record(Metric{
		SortType:  sortType,
		Path:      path,
		ItemCount: itemCount,
		Duration:  duration,
		Timestamp: e.now(),
	})
}

// SortLocal applies the local comparator and records the measurement.
func (e *Engine) SortLocal(items []*entity.Property, sortType SortType) bool {
	start := e.now()
	ok := ApplyLocal(items, sortType)
	if ok {
		e.Record(sortType, PathLocal, len(items), time.Since(start))
	}
	return ok
}
