package services

import (
	"context"
	"log/slog"
	"strings"

	"swiftmeet/internal/domain"
)

// FilterEvents returns the events matching q, in input order.
// Text matches title or organization case-insensitively; category must match
// exactly and location by substring, unless they are domain.AllValues.
func FilterEvents(events []domain.Event, q domain.EventQuery) []domain.Event {
	text := strings.ToLower(q.Text)
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Title), text) &&
			!strings.Contains(strings.ToLower(e.Organization), text) {
			continue
		}
		if q.Category != domain.AllValues && e.Category != q.Category {
			continue
		}
		if q.Location != domain.AllValues && !strings.Contains(e.Location, q.Location) {
			continue
		}
		out = append(out, e)
	}
	return out
}

type eventCatalogService struct {
	store  domain.EventStore
	logger *slog.Logger
	opts   Options
}

// NewEventCatalogService returns a read-only EventCatalogService over store.
func NewEventCatalogService(store domain.EventStore, logger *slog.Logger, opts Options) domain.EventCatalogService {
	return &eventCatalogService{store: store, logger: logger, opts: opts}
}

func (s *eventCatalogService) Search(ctx context.Context, q domain.EventQuery) ([]domain.Event, error) {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	c, err := loadCollection(ctx, s.store, s.logger)
	if err != nil {
		return nil, err
	}
	return FilterEvents(c.Events, q), nil
}
