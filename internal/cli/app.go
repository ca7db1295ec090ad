package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"swiftmeet/config"
	"swiftmeet/internal/adapters/email"
	"swiftmeet/internal/domain"
	"swiftmeet/internal/repository/file"
	"swiftmeet/internal/repository/memory"
	"swiftmeet/internal/repository/postgres"
	"swiftmeet/internal/services"

	_ "github.com/lib/pq"
)

// app holds the services shared by every command.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     domain.EventStore
	closeFn   func() error
	lifecycle domain.EventLifecycleService
	catalog   domain.EventCatalogService
	signups   domain.SignupService
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// loadApp reads the environment configuration and wires the services.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return newApp(ctx, cfg, config.NewLogger())
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	store, closeFn, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		if closeFn != nil {
			_ = closeFn()
		}
		return nil, err
	}

	opts := services.Options{
		ContextTimeout:  cfg.ContextTimeout,
		SaveRetries:     cfg.SaveRetries,
		DefaultImageURL: cfg.DefaultImageURL,
	}
	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		closeFn:   closeFn,
		lifecycle: services.NewEventLifecycleService(store, emailService, logger, opts),
		catalog:   services.NewEventCatalogService(store, logger, opts),
		signups:   services.NewSignupService(store, emailService, logger, opts),
	}, nil
}

// openStore selects the EventStore driver named by cfg.StoreDriver.
// The returned close function may be nil.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventStore, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory event store, events are lost on exit")
		return memory.NewEventStore(), nil, nil
	case config.StoreFile:
		logger.Info("using file event store", "path", cfg.DataFile)
		return file.NewEventStore(cfg.DataFile, logger), nil, nil
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("using postgres event store", "collection", cfg.CollectionName)
		return postgres.NewEventStore(db, cfg.CollectionName), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newEmailService(cfg *config.Config, logger *slog.Logger) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.Region,
			AccessKeyID:        cfg.Mailer.AccessKeyID,
			SecretAccessKey:    cfg.Mailer.SecretAccessKey,
			InsecureSkipVerify: cfg.Mailer.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}
	return services.NewEmailService(mailer, renderer, logger), nil
}
