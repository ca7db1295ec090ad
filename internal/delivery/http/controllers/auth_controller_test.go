package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"swiftmeet/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	token        string
	err          error
	lastUsername string
	lastPassword string
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (string, *domain.Organizer, error) {
	f.lastUsername = username
	f.lastPassword = password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, &domain.Organizer{Username: username}, nil
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "success", body: `{"username":"organizer","password":"secret123"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"username":"organizer","password":"nope"}`, fakeErr: domain.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "login disabled", body: `{"username":"organizer","password":"secret123"}`, fakeErr: domain.ErrLoginDisabled, wantStatus: http.StatusServiceUnavailable, wantCode: "login_disabled"},
		{name: "missing fields", body: `{"username":"  "}`, wantStatus: http.StatusBadRequest, wantCode: "bad_request", wantMessage: "username is required; password is required"},
		{name: "issuer failure", body: `{"username":"organizer","password":"secret123"}`, fakeErr: errors.New("signing failed"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{token: "tok-123", err: tt.fakeErr}
			ctrl := NewAuthController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantCode != "" {
				envelope := decodeEnvelope(t, rr, nil)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, envelope.Error.Message)
				}
				return
			}
			var resp LoginResponse
			decodeEnvelope(t, rr, &resp)
			assert.Equal(t, "tok-123", resp.Token)
			assert.Equal(t, "Bearer", resp.TokenType)
			require.NotNil(t, resp.Organizer)
			assert.Equal(t, "organizer", resp.Organizer.Username)
			assert.Equal(t, "secret123", svc.lastPassword)
		})
	}
}
