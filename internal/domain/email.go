package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEmailData holds data for emails sent to an event's contact person.
type EventEmailData struct {
	Email         string
	ContactName   string
	EventID       string
	Title         string
	Organization  string
	Date          string
	StartTime     string
	EndTime       string
	Location      string
	MaxVolunteers int
}

// NewEventEmailData builds the template data for e.
func NewEventEmailData(e *Event) *EventEmailData {
	return &EventEmailData{
		Email:         e.ContactEmail,
		ContactName:   e.ContactName,
		EventID:       e.ID,
		Title:         e.Title,
		Organization:  e.Organization,
		Date:          e.Date,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Location:      e.Location,
		MaxVolunteers: e.MaxVolunteers,
	}
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventPublished(ctx context.Context, data *EventEmailData) error
	SendEventFull(ctx context.Context, data *EventEmailData) error
}
