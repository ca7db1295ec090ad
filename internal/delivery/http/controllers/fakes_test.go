package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"swiftmeet/internal/delivery/http/helpers"
	"swiftmeet/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// recordingHandler keeps every log record for assertions.
type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

// attrs flattens the attributes of r.
func attrs(r slog.Record) map[string]string {
	out := map[string]string{}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.String()
		return true
	})
	return out
}

// fakeLifecycle implements domain.EventLifecycleService for handler tests.
type fakeLifecycle struct {
	events     map[string]domain.Event
	err        error
	lastDraft  domain.EventDraft
	lastID     string
	deletedIDs []string
}

func (f *fakeLifecycle) Create(_ context.Context, draft domain.EventDraft) (*domain.Event, error) {
	f.lastDraft = draft
	if f.err != nil {
		return nil, f.err
	}
	e := domain.NewEvent("ev-created", draft.Normalize(), testNow, "")
	return &e, nil
}

func (f *fakeLifecycle) GetByID(_ context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (f *fakeLifecycle) List(context.Context) ([]domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLifecycle) Update(_ context.Context, id string, draft domain.EventDraft) (*domain.Event, error) {
	f.lastID = id
	f.lastDraft = draft
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e = e.WithDraft(draft.Normalize(), "")
	return &e, nil
}

func (f *fakeLifecycle) Delete(_ context.Context, id string) error {
	f.lastID = id
	if f.err != nil {
		return f.err
	}
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

// fakeCatalog implements domain.EventCatalogService.
type fakeCatalog struct {
	result    []domain.Event
	err       error
	lastQuery domain.EventQuery
}

func (f *fakeCatalog) Search(_ context.Context, q domain.EventQuery) ([]domain.Event, error) {
	f.lastQuery = q
	return f.result, f.err
}

// fakeSignups implements domain.SignupService over a single event.
type fakeSignups struct {
	event  domain.Event
	err    error
	lastID string
}

func (f *fakeSignups) SignUp(_ context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	e := f.event
	e.Volunteers++
	return &e, nil
}

func (f *fakeSignups) CancelSignup(_ context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	e := f.event
	if e.Volunteers > 0 {
		e.Volunteers--
	}
	return &e, nil
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil,
// re-decodes its data into dest.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, dest))
	}
	return envelope
}
