package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"swiftmeet/internal/domain"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the event_collections table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

type eventStore struct {
	DB   *sql.DB
	name string
}

// NewEventStore returns a domain.EventStore keeping the named collection in a
// single event_collections row. Saves are compare-and-swap on the version column.
func NewEventStore(db *sql.DB, name string) domain.EventStore {
	return &eventStore{DB: db, name: name}
}

func (r *eventStore) Load(ctx context.Context) (domain.EventCollection, error) {
	query := `SELECT version, events FROM event_collections WHERE name = $1`
	var version int64
	var raw []byte
	err := r.DB.QueryRowContext(ctx, query, r.name).Scan(&version, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EventCollection{Events: []domain.Event{}}, nil
		}
		return domain.EventCollection{}, &domain.StorageError{Op: "read", Err: err}
	}

	var events []domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return domain.EventCollection{}, &domain.CorruptStateError{Version: version, Err: err}
	}
	if events == nil {
		events = []domain.Event{}
	}
	c := domain.EventCollection{Version: version, Events: events}
	if err := c.Check(); err != nil {
		return domain.EventCollection{}, &domain.CorruptStateError{Version: version, Err: err}
	}
	return c, nil
}

func (r *eventStore) Save(ctx context.Context, c domain.EventCollection) (domain.EventCollection, error) {
	saved := c.Clone()
	if saved.Events == nil {
		saved.Events = []domain.Event{}
	}
	body, err := json.Marshal(saved.Events)
	if err != nil {
		return domain.EventCollection{}, &domain.StorageError{Op: "encode", Err: err}
	}

	var result sql.Result
	if c.Version == 0 {
		query := `
			INSERT INTO event_collections (name, version, schema_version, events, updated_at)
			VALUES ($1, 1, $2, $3, NOW())
			ON CONFLICT (name) DO NOTHING
		`
		result, err = r.DB.ExecContext(ctx, query, r.name, domain.SchemaVersion, body)
	} else {
		query := `
			UPDATE event_collections
			SET version = version + 1, schema_version = $1, events = $2, updated_at = NOW()
			WHERE name = $3 AND version = $4
		`
		result, err = r.DB.ExecContext(ctx, query, domain.SchemaVersion, body, r.name, c.Version)
	}
	if err != nil {
		return domain.EventCollection{}, &domain.StorageError{Op: classify(err), Err: err}
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.EventCollection{}, &domain.StorageError{Op: "write", Err: err}
	}
	if rows == 0 {
		return domain.EventCollection{}, domain.ErrConflict
	}
	saved.Version = c.Version + 1
	return saved, nil
}

// classify names the failed operation from the Postgres error class.
func classify(err error) string {
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return "write"
	}
	switch perr.Code.Class() {
	case "53":
		return "write (insufficient resources)"
	case "54":
		return "write (program limit exceeded)"
	case "08":
		return "write (connection)"
	default:
		return "write"
	}
}
