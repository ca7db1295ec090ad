package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"swiftmeet/internal/domain"
)

type eventLifecycleService struct {
	store        domain.EventStore
	emailService domain.EmailService
	logger       *slog.Logger
	opts         Options
	now          func() time.Time
	newID        func() string
}

// NewEventLifecycleService creates an EventLifecycleService persisting through store.
// emailService may be nil, in which case no notifications are sent.
func NewEventLifecycleService(store domain.EventStore, emailService domain.EmailService, logger *slog.Logger, opts Options) domain.EventLifecycleService {
	return &eventLifecycleService{
		store:        store,
		emailService: emailService,
		logger:       logger,
		opts:         opts,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

func (s *eventLifecycleService) Create(ctx context.Context, draft domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	draft = draft.Normalize()
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var created domain.Event
	err := retryOnConflict(ctx, s.opts.attempts(), func() error {
		c, err := loadCollection(ctx, s.store, s.logger)
		if err != nil {
			return err
		}
		created = domain.NewEvent(s.uniqueID(c), draft, s.now().UTC(), s.opts.DefaultImageURL)
		c.Events = append(c.Events, created)
		return saveCollection(ctx, s.store, c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created", "event_id", created.ID, "title", created.Title)
	if s.emailService != nil {
		if err := s.emailService.SendEventPublished(ctx, domain.NewEventEmailData(&created)); err != nil {
			s.logger.WarnContext(ctx, "failed to send event published email", "event_id", created.ID, "err", err)
		}
	}
	return &created, nil
}

// uniqueID draws ids until one is not taken in c.
func (s *eventLifecycleService) uniqueID(c domain.EventCollection) string {
	for {
		id := s.newID()
		if c.Find(id) < 0 {
			return id
		}
	}
}

func (s *eventLifecycleService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	c, err := loadCollection(ctx, s.store, s.logger)
	if err != nil {
		return nil, err
	}
	i := c.Find(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	ev := c.Events[i]
	return &ev, nil
}

func (s *eventLifecycleService) List(ctx context.Context) ([]domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	c, err := loadCollection(ctx, s.store, s.logger)
	if err != nil {
		return nil, err
	}
	return c.Events, nil
}

func (s *eventLifecycleService) Update(ctx context.Context, id string, draft domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	draft = draft.Normalize()
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	var updated domain.Event
	err := retryOnConflict(ctx, s.opts.attempts(), func() error {
		c, err := loadCollection(ctx, s.store, s.logger)
		if err != nil {
			return err
		}
		i := c.Find(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		current := c.Events[i]
		if draft.MaxVolunteers < current.Volunteers {
			return &domain.ValidationError{Fields: []domain.FieldError{{
				Field:  "maxVolunteers",
				Reason: fmt.Sprintf("must be at least %d, the number of volunteers already signed up", current.Volunteers),
			}}}
		}
		updated = current.WithDraft(draft, s.opts.DefaultImageURL)
		c.Events[i] = updated
		return saveCollection(ctx, s.store, c)
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", updated.ID)
	return &updated, nil
}

func (s *eventLifecycleService) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	err := retryOnConflict(ctx, s.opts.attempts(), func() error {
		c, err := loadCollection(ctx, s.store, s.logger)
		if err != nil {
			return err
		}
		i := c.Find(id)
		if i < 0 {
			return domain.ErrNotFound
		}
		c.Events = slices.Delete(c.Events, i, i+1)
		return saveCollection(ctx, s.store, c)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}
