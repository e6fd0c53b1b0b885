package accumulator

import (
	"time"

	"property-search-be/internal/entity"

	"github.com/google/uuid"
)

// State is the merged view of all batches delivered so far for one
// (query, filter, sort) key.
type State struct {
	Key        string             `json:"key"`
	Items      []*entity.Property `json:"items"`
	TotalHint  *int64             `json:"total_hint,omitempty"`
	BatchIndex int                `json:"batch_index"`
	Complete   bool               `json:"complete"`
	UpdatedAt  time.Time          `json:"updated_at"`

	// seen is the dedup index over Items. Rebuilt lazily after a state
	// round-trips through a serializing store.
	seen map[uuid.UUID]bool
}

func newState(key string) *State {
	return &State{
		Key:  key,
		seen: make(map[uuid.UUID]bool),
	}
}

func (s *State) ensureIndex() {
	if s.seen != nil {
		return
	}
	s.seen = make(map[uuid.UUID]bool, len(s.Items))
	for _, item := range s.Items {
		s.seen[item.Id] = true
	}
}

// merge appends the batch items not already present. Returns how many
// were actually added.
func (s *State) merge(batch []*entity.Property) int {
	s.ensureIndex()
	added := 0
	for _, item := range batch {
		if s.seen[item.Id] {
			continue
		}
		s.seen[item.Id] = true
		s.Items = append(s.Items, item)
		added++
	}
	return added
}
