package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupController(t *testing.T) {
	nearlyFull := gardenEvent()
	nearlyFull.Volunteers = nearlyFull.MaxVolunteers - 1

	tests := []struct {
		name        string
		cancel      bool
		eventID     string
		fakeErr     error
		wantStatus  int
		wantCode    string
		wantVol     int
		wantCapStat domain.CapacityStatus
	}{
		{name: "sign up fills the last spot", eventID: "ev-1", wantStatus: http.StatusOK, wantVol: 10, wantCapStat: domain.StatusFull},
		{name: "sign up on full event", eventID: "ev-1", fakeErr: domain.ErrEventFull, wantStatus: http.StatusConflict, wantCode: "event_full"},
		{name: "sign up unknown event", eventID: "nope", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "sign up missing eventID", eventID: "", wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "sign up retries exhausted", eventID: "ev-1", fakeErr: domain.ErrConflict, wantStatus: http.StatusConflict, wantCode: "conflict"},
		{name: "cancel frees a spot", cancel: true, eventID: "ev-1", wantStatus: http.StatusOK, wantVol: 8, wantCapStat: domain.StatusOpen},
		{name: "cancel unknown event", cancel: true, eventID: "nope", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{
			name:       "cancel storage failure",
			cancel:     true,
			eventID:    "ev-1",
			fakeErr:    &domain.StorageError{Op: "write", Err: errors.New("disk full")},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "storage_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSignups{event: nearlyFull, err: tt.fakeErr}
			ctrl := NewSignupController(testLogger, svc)
			method, handler := http.MethodPost, ctrl.SignUp
			if tt.cancel {
				method, handler = http.MethodDelete, ctrl.CancelSignup
			}
			req := httptest.NewRequest(method, "http://test/events/"+tt.eventID+"/signups", nil)
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantCode != "" {
				envelope := decodeEnvelope(t, rr, nil)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			var view EventView
			decodeEnvelope(t, rr, &view)
			assert.Equal(t, tt.wantVol, view.Event.Volunteers)
			assert.Equal(t, tt.wantCapStat, view.Status)
			assert.Equal(t, tt.eventID, svc.lastID)
		})
	}
}
