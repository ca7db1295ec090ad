package services

import (
	"context"
	"log/slog"

	"swiftmeet/internal/domain"
)

type signupService struct {
	store        domain.EventStore
	emailService domain.EmailService
	logger       *slog.Logger
	opts         Options
}

// NewSignupService creates the SignupService, the only writer of Event.Volunteers.
// emailService may be nil.
func NewSignupService(store domain.EventStore, emailService domain.EmailService, logger *slog.Logger, opts Options) domain.SignupService {
	return &signupService{
		store:        store,
		emailService: emailService,
		logger:       logger,
		opts:         opts,
	}
}

func (s *signupService) SignUp(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

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
		ev := c.Events[i]
		if ev.Volunteers >= ev.MaxVolunteers {
			return domain.ErrEventFull
		}
		ev.Volunteers++
		c.Events[i] = ev
		if err := saveCollection(ctx, s.store, c); err != nil {
			return err
		}
		updated = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "volunteer signed up", "event_id", id, "volunteers", updated.Volunteers, "max_volunteers", updated.MaxVolunteers)
	if updated.Status() == domain.StatusFull && s.emailService != nil {
		if err := s.emailService.SendEventFull(ctx, domain.NewEventEmailData(&updated)); err != nil {
			s.logger.WarnContext(ctx, "failed to send event full email", "event_id", id, "err", err)
		}
	}
	return &updated, nil
}

func (s *signupService) CancelSignup(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

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
		ev := c.Events[i]
		if ev.Volunteers == 0 {
			updated = ev
			return nil
		}
		ev.Volunteers--
		c.Events[i] = ev
		if err := saveCollection(ctx, s.store, c); err != nil {
			return err
		}
		updated = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "volunteer signup cancelled", "event_id", id, "volunteers", updated.Volunteers)
	return &updated, nil
}
