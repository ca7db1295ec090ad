package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "swiftmeet/internal/delivery/http/helpers"
	"swiftmeet/internal/domain"
)

// LoginRequest is the request body for POST /auth/token
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Username) == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the response body for POST /auth/token
type LoginResponse struct {
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"`
	Organizer *domain.Organizer `json:"organizer"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Obtain an organizer token
// @Description Exchanges the organizer username and password for a bearer token used by the create, edit and delete routes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Organizer credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type and organizer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: login_disabled"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/token [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, org, err := c.Service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid username or password")
		case errors.Is(err, domain.ErrLoginDisabled):
			h.WriteJSONError(w, http.StatusServiceUnavailable, h.ErrCodeLoginDisabled, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	c.Logger.InfoContext(r.Context(), "organizer logged in", "username", org.Username)
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer", Organizer: org})
}
