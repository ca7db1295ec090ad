package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"swiftmeet/internal/domain"
)

// Options tunes the read-modify-write cycle shared by the event services.
type Options struct {
	// ContextTimeout bounds one operation, load and save included. Zero disables it.
	ContextTimeout time.Duration
	// SaveRetries is how many times a cycle is re-run after ErrConflict.
	SaveRetries int
	// DefaultImageURL replaces a blank image on create and update.
	DefaultImageURL string
}

func (o Options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.ContextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.ContextTimeout)
}

func (o Options) attempts() int {
	if o.SaveRetries < 0 {
		return 1
	}
	return o.SaveRetries + 1
}

// retryOnConflict runs fn until it returns something other than ErrConflict,
// at most attempts times.
func retryOnConflict(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

// loadCollection loads the persisted collection. A corrupt collection is
// reported and treated as empty, keeping its version so it can be overwritten.
func loadCollection(ctx context.Context, store domain.EventStore, logger *slog.Logger) (domain.EventCollection, error) {
	c, err := store.Load(ctx)
	if err == nil {
		return c, nil
	}
	var cerr *domain.CorruptStateError
	if errors.As(err, &cerr) {
		logger.WarnContext(ctx, "event collection is corrupt, treating as empty", "version", cerr.Version, "err", cerr.Err)
		return domain.EventCollection{Version: cerr.Version, Events: []domain.Event{}}, nil
	}
	return domain.EventCollection{}, fmt.Errorf("load events: %w", err)
}

func saveCollection(ctx context.Context, store domain.EventStore, c domain.EventCollection) error {
	if _, err := store.Save(ctx, c); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
