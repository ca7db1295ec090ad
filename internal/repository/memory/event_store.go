package memory

import (
	"context"
	"sync"

	"swiftmeet/internal/domain"
)

// EventStore keeps the event collection in process memory.
// It is safe for concurrent use; every Load returns a deep copy.
type EventStore struct {
	mu      sync.RWMutex
	version int64
	events  []domain.Event
}

// NewEventStore returns an EventStore seeded with events at version 0.
func NewEventStore(events ...domain.Event) *EventStore {
	c := domain.EventCollection{Events: events}.Clone()
	return &EventStore{events: c.Events}
}

func (s *EventStore) Load(ctx context.Context) (domain.EventCollection, error) {
	if err := ctx.Err(); err != nil {
		return domain.EventCollection{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.EventCollection{Version: s.version, Events: s.events}.Clone(), nil
}

func (s *EventStore) Save(ctx context.Context, c domain.EventCollection) (domain.EventCollection, error) {
	if err := ctx.Err(); err != nil {
		return domain.EventCollection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.Version != s.version {
		return domain.EventCollection{}, domain.ErrConflict
	}
	saved := c.Clone()
	s.version++
	s.events = saved.Events
	saved.Version = s.version
	return saved.Clone(), nil
}
