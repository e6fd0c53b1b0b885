package accumulator

import (
	"context"
	"sync"
	"time"

	"property-search-be/internal/entity"
)

// Accumulator merges paginated result deliveries into one deduplicated,
// versioned view per (query, filter, sort) key. The read-merge-write
// cycle is serialized per key only: an ingest waiting on its own store
// round-trip never blocks ingests for other keys, which matters when the
// store is Redis and Get/Put are network calls.
type Accumulator struct {
	store Store
	now   func() time.Time

	keyLocks sync.Map // key -> *sync.Mutex
}

func New(store Store) *Accumulator {
	return &Accumulator{
		store: store,
		now:   time.Now,
	}
}

func (a *Accumulator) lockFor(key string) *sync.Mutex {
	mu, _ := a.keyLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Ingest merges a batch into the state for key. Repeated or overlapping
// batches never produce duplicate entries. isFinal marks the state
// complete; totalHint, when non-nil, updates the expected total.
func (a *Accumulator) Ingest(ctx context.Context, key string, batch []*entity.Property, isFinal bool, totalHint *int64) (*State, error) {
	mu := a.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	state, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		state = newState(key)
	}

	state.merge(batch)
	state.BatchIndex++
	if totalHint != nil {
		state.TotalHint = totalHint
	}
	if isFinal {
		state.Complete = true
	}
	state.UpdatedAt = a.now()

	if err := a.store.Put(ctx, key, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Read returns the latest merged view for key.
func (a *Accumulator) Read(ctx context.Context, key string) (*State, bool, error) {
	return a.store.Get(ctx, key)
}

// Clear drops the state and any derived views for key.
func (a *Accumulator) Clear(ctx context.Context, key string) error {
	mu := a.lockFor(key)
	mu.Lock()
	defer mu.Unlock()

	if err := a.store.Delete(ctx, key); err != nil {
		return err
	}
	a.keyLocks.Delete(key)
	return nil
}
