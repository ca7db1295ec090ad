package domain

import (
	"context"
	"strings"
	"time"
)

// DefaultImageURL is the image shown for events created without one.
const DefaultImageURL = "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?w=400&h=250&fit=crop"

// Event represents a volunteering event published by an organization.
// swagger:model Event
type Event struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Organization    string       `json:"organization"`
	Category        string       `json:"category"`
	Description     string       `json:"description"`
	LongDescription string       `json:"longDescription"`
	Location        string       `json:"location"`
	Address         string       `json:"address"`
	Date            string       `json:"date"`
	StartTime       string       `json:"startTime"`
	EndTime         string       `json:"endTime"`
	MaxVolunteers   int          `json:"maxVolunteers"`
	Volunteers      int          `json:"volunteers"`
	Requirements    Requirements `json:"requirements"`
	ContactName     string       `json:"contactName"`
	ContactEmail    string       `json:"contactEmail"`
	ContactPhone    string       `json:"contactPhone"`
	CreatedAt       time.Time    `json:"createdAt"`
	Image           string       `json:"image"`
}

// EventDraft is the organizer-supplied part of an Event: everything except
// id, volunteers and createdAt.
type EventDraft struct {
	Title           string       `json:"title" yaml:"title" validate:"required"`
	Organization    string       `json:"organization" yaml:"organization" validate:"required"`
	Category        string       `json:"category" yaml:"category" validate:"required,category"`
	Description     string       `json:"description" yaml:"description" validate:"required"`
	LongDescription string       `json:"longDescription" yaml:"longDescription"`
	Location        string       `json:"location" yaml:"location" validate:"required"`
	Address         string       `json:"address" yaml:"address"`
	Date            string       `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string       `json:"startTime" yaml:"startTime" validate:"required,datetime=15:04"`
	EndTime         string       `json:"endTime" yaml:"endTime" validate:"required,datetime=15:04"`
	MaxVolunteers   int          `json:"maxVolunteers" yaml:"maxVolunteers" validate:"min=1"`
	Requirements    Requirements `json:"requirements" yaml:"requirements"`
	ContactName     string       `json:"contactName" yaml:"contactName" validate:"required"`
	ContactEmail    string       `json:"contactEmail" yaml:"contactEmail" validate:"required,contains=@"`
	ContactPhone    string       `json:"contactPhone" yaml:"contactPhone"`
	Image           string       `json:"image" yaml:"image"`
}

// Normalize trims every text field and drops blank requirements.
func (d EventDraft) Normalize() EventDraft {
	d.Title = strings.TrimSpace(d.Title)
	d.Organization = strings.TrimSpace(d.Organization)
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)
	d.LongDescription = strings.TrimSpace(d.LongDescription)
	d.Location = strings.TrimSpace(d.Location)
	d.Address = strings.TrimSpace(d.Address)
	d.Date = strings.TrimSpace(d.Date)
	d.StartTime = strings.TrimSpace(d.StartTime)
	d.EndTime = strings.TrimSpace(d.EndTime)
	d.ContactName = strings.TrimSpace(d.ContactName)
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)
	d.ContactPhone = strings.TrimSpace(d.ContactPhone)
	d.Image = strings.TrimSpace(d.Image)
	var reqs Requirements
	for _, r := range d.Requirements {
		reqs = reqs.Append(r)
	}
	d.Requirements = reqs
	return d
}

// NewEvent builds an Event from a normalized draft with zero volunteers.
// The image is defaulted to fallbackImage when the draft has none.
func NewEvent(id string, d EventDraft, createdAt time.Time, fallbackImage string) Event {
	e := Event{
		ID:        id,
		CreatedAt: createdAt,
	}
	e.applyDraft(d, fallbackImage)
	return e
}

// WithDraft returns a copy of e with its descriptive fields replaced by d.
// Identity, volunteer count and createdAt are kept.
func (e Event) WithDraft(d EventDraft, fallbackImage string) Event {
	e.applyDraft(d, fallbackImage)
	return e
}

func (e *Event) applyDraft(d EventDraft, fallbackImage string) {
	e.Title = d.Title
	e.Organization = d.Organization
	e.Category = d.Category
	e.Description = d.Description
	e.LongDescription = d.LongDescription
	e.Location = d.Location
	e.Address = d.Address
	e.Date = d.Date
	e.StartTime = d.StartTime
	e.EndTime = d.EndTime
	e.MaxVolunteers = d.MaxVolunteers
	e.Requirements = d.Requirements.Clone()
	e.ContactName = d.ContactName
	e.ContactEmail = d.ContactEmail
	e.ContactPhone = d.ContactPhone
	e.Image = ApplyImageDefault(d.Image, fallbackImage)
}

// ApplyImageDefault returns image, or fallback when image is blank.
// An empty fallback means DefaultImageURL.
func ApplyImageDefault(image, fallback string) string {
	if strings.TrimSpace(image) != "" {
		return image
	}
	if fallback == "" {
		return DefaultImageURL
	}
	return fallback
}

// CapacityStatus is the signup state of an event.
type CapacityStatus string

const (
	StatusOpen CapacityStatus = "open"
	StatusFull CapacityStatus = "full"
)

// Status reports whether the event still accepts volunteers.
func (e Event) Status() CapacityStatus {
	if e.Volunteers >= e.MaxVolunteers {
		return StatusFull
	}
	return StatusOpen
}

// SpotsLeft returns the number of volunteers that can still sign up.
func (e Event) SpotsLeft() int {
	if left := e.MaxVolunteers - e.Volunteers; left > 0 {
		return left
	}
	return 0
}

// Clone returns a deep copy of e.
func (e Event) Clone() Event {
	e.Requirements = e.Requirements.Clone()
	return e
}

// Requirements is an ordered list of free-text volunteer requirements.
// It never holds blank entries.
type Requirements []string

// Append adds r (trimmed) at the end. Blank input is ignored.
func (r Requirements) Append(s string) Requirements {
	s = strings.TrimSpace(s)
	if s == "" {
		return r
	}
	return append(r, s)
}

// Remove drops the entry at index i. Out-of-range indexes are ignored.
func (r Requirements) Remove(i int) Requirements {
	if i < 0 || i >= len(r) {
		return r
	}
	out := make(Requirements, 0, len(r)-1)
	out = append(out, r[:i]...)
	return append(out, r[i+1:]...)
}

// Clone returns a copy that does not share backing storage with r.
func (r Requirements) Clone() Requirements {
	out := make(Requirements, len(r))
	copy(out, r)
	return out
}

// EventLifecycleService creates, reads, updates and deletes events.
type EventLifecycleService interface {
	Create(ctx context.Context, draft EventDraft) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Update(ctx context.Context, id string, draft EventDraft) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// SignupService adjusts the volunteer count of a single event within its capacity.
type SignupService interface {
	SignUp(ctx context.Context, id string) (*Event, error)
	CancelSignup(ctx context.Context, id string) (*Event, error)
}
