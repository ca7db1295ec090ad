package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for event operations.
var (
	ErrNotFound      = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
	ErrConflict      = errors.New("event collection was modified concurrently")
	ErrUnauthorized  = errors.New("invalid credentials")
	ErrLoginDisabled = errors.New("organizer login is not configured")
)

// FieldError describes one failed validation rule.
// swagger:model FieldError
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every failed rule of a draft.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// StorageError is returned when the persistence medium rejects a write.
// The previously persisted collection is left untouched.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// CorruptStateError is returned by EventStore.Load when the persisted content
// cannot be read as an event collection. Version is the persisted version
// when it could be determined, so callers can still save over it.
type CorruptStateError struct {
	Version int64
	Err     error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt event collection (version %d): %v", e.Version, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }
