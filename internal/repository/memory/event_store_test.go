package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftmeet/internal/domain"
)

func TestEventStore_Load_returns_copy(t *testing.T) {
	seed := domain.Event{ID: "a", MaxVolunteers: 3, Requirements: domain.Requirements{"Gloves"}}
	s := NewEventStore(seed)

	c, err := s.Load(context.Background())
	require.NoError(t, err)
	c.Events[0].Volunteers = 2
	c.Events[0].Requirements[0] = "changed"

	again, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Events[0].Volunteers)
	assert.Equal(t, domain.Requirements{"Gloves"}, again.Events[0].Requirements)
}

func TestEventStore_Save(t *testing.T) {
	s := NewEventStore()
	ctx := context.Background()

	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.Version)

	c.Events = append(c.Events, domain.Event{ID: "a", MaxVolunteers: 1})
	saved, err := s.Save(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	_, err = s.Save(ctx, c)
	assert.ErrorIs(t, err, domain.ErrConflict, "stale version")

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestEventStore_concurrent_saves_one_winner(t *testing.T) {
	s := NewEventStore()
	base, err := s.Load(context.Background())
	require.NoError(t, err)

	const writers = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := base.Clone()
			c.Events = append(c.Events, domain.Event{ID: "x", MaxVolunteers: 1})
			if _, err := s.Save(context.Background(), c); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestEventStore_cancelled_context(t *testing.T) {
	s := NewEventStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Save(ctx, domain.EventCollection{})
	assert.ErrorIs(t, err, context.Canceled)
}
