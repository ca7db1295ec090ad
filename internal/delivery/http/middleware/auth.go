package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "swiftmeet/internal/delivery/http/helpers"
	"swiftmeet/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context carrying the authenticated organizer's username.
func SetOrganizer(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, organizerKey, username)
}

// OrganizerFromContext returns the authenticated organizer's username, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(organizerKey).(string)
	return name, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the organizer in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			username, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetOrganizer(r.Context(), username)))
		}
	}
}

// Open is a pass-through wrapper used in place of RequireAuth when organizer login is disabled.
func Open(next http.HandlerFunc) http.HandlerFunc {
	return next
}
