package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"property-search-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	TopQueries(n int) []string
}

const (
	trendingWindow     = time.Hour
	trendingMaxEntries = 1024
)

// consumerService tallies successful searches from the in-process bus
// into a sliding window of trending queries. The window feeds the
// zero-result suggestion builder.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string

	mu      sync.Mutex
	entries []trendingEntry
}

type trendingEntry struct {
	query string
	at    time.Time
}

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.SearchPerformedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal search message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// Only searches that actually found something can trend: suggesting a
	// query known to be empty would just bounce the user.
	if payload.ResultCount > 0 && strings.TrimSpace(payload.Query) != "" {
		cs.record(payload.Query)
	}
	msg.Ack()
}

func (cs *consumerService) record(query string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.entries = append(cs.entries, trendingEntry{query: query, at: time.Now()})
	if len(cs.entries) > trendingMaxEntries {
		cs.entries = cs.entries[len(cs.entries)-trendingMaxEntries:]
	}
}

// TopQueries returns the n most-searched queries within the window,
// most frequent first, ties broken lexically for determinism.
func (cs *consumerService) TopQueries(n int) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cutoff := time.Now().Add(-trendingWindow)
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, e := range cs.entries {
		if e.at.Before(cutoff) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(e.query))
		counts[key]++
		if _, ok := display[key]; !ok {
			display[key] = e.query
		}
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if n > len(keys) {
		n = len(keys)
	}
	out := make([]string, 0, n)
	for _, k := range keys[:n] {
		out = append(out, display[k])
	}
	return out
}
