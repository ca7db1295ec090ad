package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "swiftmeet/docs"
	"swiftmeet/internal/adapters/auth"
	delivery "swiftmeet/internal/delivery/http"
	"swiftmeet/internal/delivery/http/controllers"
	"swiftmeet/internal/delivery/http/middleware"
	"swiftmeet/internal/domain"
	"swiftmeet/internal/services"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := net.JoinHostPort("", a.cfg.Port)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           newHandler(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", addr, "env", a.cfg.Environment, "store", a.cfg.StoreDriver, "auth", a.cfg.AuthEnabled())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	a.logger.Info("server stopped")
	return nil
}

// newHandler builds the routed and wrapped HTTP handler for a.
// Organizer routes are public unless JWT_SECRET is set.
func newHandler(a *app) http.Handler {
	requireAuth := middleware.Open
	var issuer domain.TokenIssuer
	if a.cfg.AuthEnabled() {
		requireAuth = middleware.RequireAuth(auth.NewJWTVerifier(a.cfg.JWTSecret), a.logger)
		issuer = auth.NewJWTIssuer(a.cfg.JWTSecret)
	} else {
		a.logger.Warn("JWT_SECRET is not set, organizer routes are unauthenticated")
	}

	authService := services.NewAuthService(
		a.cfg.AdminUsername,
		a.cfg.AdminPasswordHash,
		auth.NewBcryptHasher(0),
		issuer,
		a.cfg.TokenExpiry,
	)

	mux := delivery.NewRouter(delivery.Controllers{
		Events:  controllers.NewEventController(a.logger, a.lifecycle, a.catalog),
		Signups: controllers.NewSignupController(a.logger, a.signups),
		Auth:    controllers.NewAuthController(a.logger, authService),
	}, requireAuth)
	return delivery.NewHandler(mux, a.logger, a.cfg.AllowedOrigins)
}
