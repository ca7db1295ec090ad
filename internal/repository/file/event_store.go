package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"swiftmeet/internal/domain"
)

const (
	BackupSuffix    = ".backup"
	CorruptSuffix   = ".corrupt"
	FilePermissions = 0o644
)

// document is the on-disk layout. Files holding a bare JSON array of events
// are read as version 0.
type document struct {
	SchemaVersion int            `json:"schemaVersion"`
	Version       int64          `json:"version"`
	Events        []domain.Event `json:"events"`
}

// EventStore persists the event collection as a single JSON file.
// Writes go to a temp file in the same directory which is then renamed over
// the target, so readers only ever see a complete collection.
type EventStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewEventStore returns a file-backed domain.EventStore writing to path.
func NewEventStore(path string, logger *slog.Logger) *EventStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventStore{path: path, logger: logger}
}

// Path returns the file the store writes to.
func (s *EventStore) Path() string { return s.path }

func (s *EventStore) Load(ctx context.Context) (domain.EventCollection, error) {
	if err := ctx.Err(); err != nil {
		return domain.EventCollection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.EventCollection{Events: []domain.Event{}}, nil
		}
		return domain.EventCollection{}, &domain.StorageError{Op: "read", Err: err}
	}
	return decode(data)
}

func (s *EventStore) Save(ctx context.Context, c domain.EventCollection) (domain.EventCollection, error) {
	if err := ctx.Err(); err != nil {
		return domain.EventCollection{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := os.ReadFile(s.path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.EventCollection{}, &domain.StorageError{Op: "read", Err: err}
	}

	var currentVersion int64
	corrupt := false
	if exists {
		loaded, err := decode(current)
		var cerr *domain.CorruptStateError
		switch {
		case errors.As(err, &cerr):
			currentVersion = cerr.Version
			corrupt = true
		case err != nil:
			return domain.EventCollection{}, &domain.StorageError{Op: "read", Err: err}
		default:
			currentVersion = loaded.Version
		}
	}
	if c.Version != currentVersion {
		return domain.EventCollection{}, domain.ErrConflict
	}

	saved := c.Clone()
	saved.Version = currentVersion + 1
	data, err := json.MarshalIndent(document{
		SchemaVersion: domain.SchemaVersion,
		Version:       saved.Version,
		Events:        saved.Events,
	}, "", "  ")
	if err != nil {
		return domain.EventCollection{}, &domain.StorageError{Op: "encode", Err: err}
	}

	if exists {
		suffix := BackupSuffix
		if corrupt {
			suffix = CorruptSuffix
		}
		if err := os.WriteFile(s.path+suffix, current, FilePermissions); err != nil {
			if corrupt {
				return domain.EventCollection{}, &domain.StorageError{Op: "quarantine", Err: err}
			}
			s.logger.Warn("failed to write backup", "path", s.path+suffix, "err", err)
		} else if corrupt {
			s.logger.Warn("corrupt event collection moved aside", "path", s.path+suffix)
		}
	}

	if err := s.writeAtomic(data); err != nil {
		return domain.EventCollection{}, &domain.StorageError{Op: "write", Err: err}
	}
	return saved, nil
}

func (s *EventStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, FilePermissions); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return err
	}
	return nil
}

func decode(data []byte) (domain.EventCollection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.EventCollection{Events: []domain.Event{}}, nil
	}

	var c domain.EventCollection
	if trimmed[0] == '[' {
		var events []domain.Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return domain.EventCollection{}, &domain.CorruptStateError{Err: err}
		}
		c = domain.EventCollection{Events: events}
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return domain.EventCollection{}, &domain.CorruptStateError{Version: peekVersion(trimmed), Err: err}
		}
		if doc.SchemaVersion > domain.SchemaVersion {
			return domain.EventCollection{}, &domain.CorruptStateError{
				Version: doc.Version,
				Err:     fmt.Errorf("unsupported schema version %d", doc.SchemaVersion),
			}
		}
		c = domain.EventCollection{Version: doc.Version, Events: doc.Events}
	}
	if c.Events == nil {
		c.Events = []domain.Event{}
	}
	if err := c.Check(); err != nil {
		return domain.EventCollection{}, &domain.CorruptStateError{Version: c.Version, Err: err}
	}
	return c, nil
}

// peekVersion recovers the version token from a document whose events failed
// to decode, so a corrupt file can still be overwritten without a conflict.
func peekVersion(data []byte) int64 {
	var head struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0
	}
	return head.Version
}
