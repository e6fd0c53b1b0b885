package sortengine

import (
	"sync"
	"time"
)

// Path is where a sort executed.
type Path string

const (
	PathLocal  Path = "local"
	PathRemote Path = "remote"
)

// Metric is one observed sort execution. Append-only, advisory: it
// informs future decisions and is never authoritative data.
type Metric struct {
	SortType  SortType      `json:"sort_type"`
	Path      Path          `json:"path"`
	ItemCount int           `json:"item_count"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// MetricWindow is a bounded ring buffer of recent sort metrics, safe for
// concurrent append and read from simultaneous requests.
type MetricWindow struct {
	mu      sync.Mutex
	entries []Metric
	next    int
	full    bool
}

func NewMetricWindow(capacity int) *MetricWindow {
	if capacity <= 0 {
		capacity = 256
	}
	return &MetricWindow{
		entries: make([]Metric, capacity),
	}
}

// Record appends a metric, overwriting the oldest entry once full.
func (w *MetricWindow) Record(m Metric) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries[w.next] = m
	w.next++
	if w.next == len(w.entries) {
		w.next = 0
		w.full = true
	}
}

// Len returns the number of retained entries.
func (w *MetricWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.full {
		return len(w.entries)
	}
	return w.next
}

// MeanDuration returns the mean duration and sample count for a sort
// type on one path, considering only entries recorded after since.
func (w *MetricWindow) MeanDuration(sortType SortType, path Path, since time.Time) (time.Duration, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := w.next
	if w.full {
		count = len(w.entries)
	}

	var total time.Duration
	samples := 0
	for i := 0; i < count; i++ {
		e := w.entries[i]
		if e.SortType != sortType || e.Path != path || e.Timestamp.Before(since) {
			continue
		}
		total += e.Duration
		samples++
	}
	if samples == 0 {
		return 0, 0
	}
	return total / time.Duration(samples), samples
}
