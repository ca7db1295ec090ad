package domain

import (
	"context"
	"fmt"
	"strings"
)

// SchemaVersion is written alongside every persisted collection.
const SchemaVersion = 1

// EventCollection is the full set of events plus the optimistic version token
// observed when it was loaded.
type EventCollection struct {
	Version int64
	Events  []Event
}

// Find returns the index of the event with the given id, or -1.
func (c EventCollection) Find(id string) int {
	for i := range c.Events {
		if c.Events[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers never share slices with a store.
func (c EventCollection) Clone() EventCollection {
	events := make([]Event, len(c.Events))
	for i, e := range c.Events {
		events[i] = e.Clone()
	}
	return EventCollection{Version: c.Version, Events: events}
}

// Check verifies the collection invariants: unique non-empty ids,
// maxVolunteers >= 1, 0 <= volunteers <= maxVolunteers.
func (c EventCollection) Check() error {
	seen := make(map[string]struct{}, len(c.Events))
	for i, e := range c.Events {
		if e.ID == "" {
			return fmt.Errorf("event %d: missing id", i)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("event %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.MaxVolunteers < 1 {
			return fmt.Errorf("event %q: maxVolunteers %d < 1", e.ID, e.MaxVolunteers)
		}
		if e.Volunteers < 0 || e.Volunteers > e.MaxVolunteers {
			return fmt.Errorf("event %q: volunteers %d outside [0, %d]", e.ID, e.Volunteers, e.MaxVolunteers)
		}
		for j, r := range e.Requirements {
			if strings.TrimSpace(r) == "" {
				return fmt.Errorf("event %q: blank requirement %d", e.ID, j)
			}
		}
	}
	return nil
}

// EventStore persists the whole event collection.
//
// Save writes c.Events atomically if and only if the persisted version still
// equals c.Version, returning the collection stamped with its new version.
// A version mismatch yields ErrConflict; a rejected write yields *StorageError.
type EventStore interface {
	Load(ctx context.Context) (EventCollection, error)
	Save(ctx context.Context, c EventCollection) (EventCollection, error)
}
