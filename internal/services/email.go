package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"swiftmeet/internal/domain"
)

// Template names understood by the email renderer.
const (
	templateEventPublished = "event_published"
	templateEventFull      = "event_full"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that renders contact notifications
// and hands them to mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendEventPublished tells the event contact that the event is listed.
func (s *emailService) SendEventPublished(ctx context.Context, data *domain.EventEmailData) error {
	return s.send(ctx, templateEventPublished, data)
}

// SendEventFull tells the event contact that every volunteer spot is taken.
func (s *emailService) SendEventFull(ctx context.Context, data *domain.EventEmailData) error {
	return s.send(ctx, templateEventFull, data)
}

func (s *emailService) send(ctx context.Context, template string, data *domain.EventEmailData) error {
	if data == nil {
		return errors.New(template + ": email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", template, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s: %w", template, err)
	}
	s.logger.InfoContext(ctx, "notification sent", "template", template, "event_id", data.EventID, "to", data.Email)
	return nil
}
