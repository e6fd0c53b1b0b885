package accumulator

import (
	"context"
	"sort"
	"sync"
)

// Store persists accumulator states. Implementations decide their own
// eviction: the in-memory store drops least-recently-updated keys above a
// capacity, the Redis store leans on TTLs.
type Store interface {
	Get(ctx context.Context, key string) (*State, bool, error)
	Put(ctx context.Context, key string, state *State) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is the default single-process store. A plain locked map:
// go-cache evicts by TTL, not by key count, and the eviction policy here
// must be least-recently-updated above a fixed capacity.
type MemoryStore struct {
	mu      sync.RWMutex
	states  map[string]*State
	maxKeys int
}

// evictionBatchFraction controls how many keys one eviction pass frees,
// so a store hovering at capacity does not evict on every ingest.
const evictionBatchFraction = 10

func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = 512
	}
	return &MemoryStore{
		states:  make(map[string]*State),
		maxKeys: maxKeys,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*State, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[key]
	return state, ok, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, state *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[key] = state
	if len(s.states) > s.maxKeys {
		s.evictLocked()
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
	return nil
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}

// evictLocked drops the least-recently-updated keys. Caller holds the
// write lock.
func (s *MemoryStore) evictLocked() {
	type aged struct {
		key   string
		state *State
	}
	entries := make([]aged, 0, len(s.states))
	for k, st := range s.states {
		entries = append(entries, aged{key: k, state: st})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].state.UpdatedAt.Before(entries[j].state.UpdatedAt)
	})

	drop := len(s.states) / evictionBatchFraction
	if drop < 1 {
		drop = 1
	}
	for i := 0; i < drop && i < len(entries); i++ {
		delete(s.states, entries[i].key)
	}
}
