package events

import "time"

// Event defines the contract for all analytics events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "search.performed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by all concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeSearchPerformed = "search.performed"
	TypeListingViewed   = "listing.viewed"
)

// NewSearchPerformed records a completed search request.
func NewSearchPerformed(rawQuery string, resultCount int64, broadened bool) Event {
	return BaseEvent{
		Type: TypeSearchPerformed,
		Data: map[string]interface{}{
			"query":        rawQuery,
			"result_count": resultCount,
			"broadened":    broadened,
		},
		OccurredAt: time.Now(),
	}
}

// NewListingViewed records user feedback on a search result
// (click, contact, view of details).
func NewListingViewed(listingID, searchKey, action string) Event {
	return BaseEvent{
		Type: TypeListingViewed,
		Data: map[string]interface{}{
			"listing_id": listingID,
			"search_key": searchKey,
			"action":     action,
		},
		OccurredAt: time.Now(),
	}
}
