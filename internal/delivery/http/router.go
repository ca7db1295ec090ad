package http

import (
	"log/slog"
	"net/http"

	"swiftmeet/internal/delivery/http/controllers"
	"swiftmeet/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events  *controllers.EventController
	Signups *controllers.SignupController
	Auth    *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps the organizer routes; pass middleware.Open to leave them public.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Catalog
	mux.HandleFunc("GET /catalog/options", c.Events.CatalogOptions)
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEventByID)

	// Lifecycle
	mux.HandleFunc("POST /events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{eventID}", requireAuth(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(c.Events.DeleteEvent))

	// Signups
	mux.HandleFunc("POST /events/{eventID}/signups", c.Signups.SignUp)
	mux.HandleFunc("DELETE /events/{eventID}/signups", c.Signups.CancelSignup)

	// Auth
	mux.HandleFunc("POST /auth/token", c.Auth.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request id, logging, panic recovery and CORS.
func NewHandler(mux http.Handler, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var h http.Handler = mux
	h = middleware.CORS(allowedOrigins, h)
	h = middleware.Recovery(logger, h)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.RequestID(h)
}
