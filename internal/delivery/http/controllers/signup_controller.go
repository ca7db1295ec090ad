package controllers

import (
	"log/slog"
	"net/http"

	"swiftmeet/internal/delivery/http/helpers"
	"swiftmeet/internal/domain"
)

type SignupController struct {
	Logger  *slog.Logger
	Service domain.SignupService
}

func NewSignupController(logger *slog.Logger, svc domain.SignupService) *SignupController {
	return &SignupController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up as a volunteer
// @Description Takes one volunteer spot. Fails with event_full when no spot is left.
// @Tags signups
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventViewSuccessResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: event_full or conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/signups [post]
func (c *SignupController) SignUp(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.SignUp(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewEventView(*event))
}

// CancelSignup godoc
// @Summary Cancel a volunteer signup
// @Description Releases one volunteer spot. The count never drops below zero.
// @Tags signups
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventViewSuccessResponse "data contains the updated event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 503 {object} helpers.APIResponse "error.code: storage_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/signups [delete]
func (c *SignupController) CancelSignup(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.CancelSignup(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NewEventView(*event))
}
