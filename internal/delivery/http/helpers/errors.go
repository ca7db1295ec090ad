package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"swiftmeet/internal/domain"
)

// WriteServiceError maps an error returned by the event services to its HTTP response.
// Unexpected errors are logged and reported as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	var serr *domain.StorageError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr)
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrEventFull):
		WriteJSONError(w, http.StatusConflict, ErrCodeEventFull, "event is full")
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "events were changed concurrently, try again")
	case errors.As(err, &serr):
		logger.ErrorContext(r.Context(), "storage unavailable", "path", r.URL.Path, "method", r.Method, "op", serr.Op, "err", err)
		WriteJSONError(w, http.StatusServiceUnavailable, ErrCodeStorageUnavailable, "event storage is unavailable")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}
