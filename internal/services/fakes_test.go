package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"swiftmeet/internal/domain"
	"swiftmeet/internal/repository/memory"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// fakeStore wraps the memory store and lets tests inject failures.
type fakeStore struct {
	*memory.EventStore

	mu sync.Mutex
	// conflicts makes the next N saves fail with ErrConflict after bumping
	// the stored version, as a concurrent writer would.
	conflicts int
	loadErr   error
	saveErr   error
	loads     int
	saves     int
}

func newFakeStore(events ...domain.Event) *fakeStore {
	return &fakeStore{EventStore: memory.NewEventStore(events...)}
}

func (f *fakeStore) Load(ctx context.Context) (domain.EventCollection, error) {
	f.mu.Lock()
	f.loads++
	err := f.loadErr
	f.mu.Unlock()
	if err != nil {
		return domain.EventCollection{}, err
	}
	return f.EventStore.Load(ctx)
}

func (f *fakeStore) Save(ctx context.Context, c domain.EventCollection) (domain.EventCollection, error) {
	f.mu.Lock()
	f.saves++
	saveErr := f.saveErr
	conflict := f.conflicts > 0
	if conflict {
		f.conflicts--
	}
	f.mu.Unlock()
	if saveErr != nil {
		return domain.EventCollection{}, saveErr
	}
	if conflict {
		current, err := f.EventStore.Load(ctx)
		if err != nil {
			return domain.EventCollection{}, err
		}
		if _, err := f.EventStore.Save(ctx, current); err != nil {
			return domain.EventCollection{}, err
		}
		return domain.EventCollection{}, domain.ErrConflict
	}
	return f.EventStore.Save(ctx, c)
}

func (f *fakeStore) events() []domain.Event {
	c, _ := f.EventStore.Load(context.Background())
	return c.Events
}

// fakeEmailService records the notifications the services send.
type fakeEmailService struct {
	published []*domain.EventEmailData
	full      []*domain.EventEmailData
	err       error
}

func (f *fakeEmailService) SendEventPublished(ctx context.Context, data *domain.EventEmailData) error {
	f.published = append(f.published, data)
	return f.err
}

func (f *fakeEmailService) SendEventFull(ctx context.Context, data *domain.EventEmailData) error {
	f.full = append(f.full, data)
	return f.err
}

func validDraft() domain.EventDraft {
	return domain.EventDraft{
		Title:         "Community Garden Cleanup",
		Organization:  "Green Earth",
		Category:      "Environment",
		Description:   "Help us tidy the garden beds.",
		Location:      "Downtown Community Garden",
		Date:          "2025-03-15",
		StartTime:     "09:00",
		EndTime:       "12:00",
		MaxVolunteers: 10,
		Requirements:  domain.Requirements{"Gloves"},
		ContactName:   "Jane Doe",
		ContactEmail:  "jane@greenearth.org",
	}
}

func testEvent(id string, volunteers, max int) domain.Event {
	e := domain.NewEvent(id, domain.EventDraft{
		Title:         "Event " + id,
		Organization:  "Org " + id,
		Category:      "Education",
		Description:   "desc",
		Location:      "Downtown",
		Date:          "2025-04-01",
		StartTime:     "10:00",
		EndTime:       "11:00",
		MaxVolunteers: max,
		ContactName:   "Contact",
		ContactEmail:  "c@example.org",
	}, testNow, "")
	e.Volunteers = volunteers
	return e
}

func newTestLifecycle(store domain.EventStore, email domain.EmailService, opts Options) *eventLifecycleService {
	svc := NewEventLifecycleService(store, email, testLogger, opts).(*eventLifecycleService)
	svc.now = func() time.Time { return testNow }
	return svc
}
