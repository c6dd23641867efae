/*
Package sqlite persists the portal's collections in SQLite.

PURPOSE:
  The portal stores each collection as one JSON-serialized document under
  a fixed key: time-off requests, the roster, and the weekly template
  cache. This mirrors the key-value contract the frontend relies on while
  giving the server a durable single file.

KEYS:
  timeOffRequests  JSON array of schedule.TimeOffRequest
  employees        JSON array of schedule.Employee
  weeklyShifts     JSON array of schedule.WeeklyShiftTemplate

SEMANTICS:
  Single writer, attempt-once. There is no versioning and no migration
  path beyond table creation; collections are replaced whole. A malformed
  payload surfaces as schedule.ErrMalformedCollection so callers can
  degrade to an empty collection instead of propagating bad data.

WAL MODE:
  SQLite is opened with WAL so readers don't block the writer.

USAGE:
  store, err := sqlite.New("./crewboard.db")   // ":memory:" for tests
  defer store.Close()

SEE ALSO:
  - ../../schedule/types.go: the persisted types
  - ../../api/handlers.go: the only writer
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harborops/crewboard/schedule"
)

// Fixed collection keys, matching the original storage layout.
const (
	KeyRequests  = "timeOffRequests"
	KeyRoster    = "employees"
	KeyTemplates = "weeklyShifts"
)

// Store persists JSON collections under fixed keys.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the store. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS collections (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schemaSQL)
	return err
}

// =============================================================================
// RAW COLLECTION ACCESS
// =============================================================================

// loadCollection decodes the payload under key into v. A missing key
// leaves v untouched. A payload that fails to decode is reported as
// schedule.ErrMalformedCollection.
func (s *Store) loadCollection(ctx context.Context, key string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("load %s: %w: %v", key, schedule.ErrMalformedCollection, err)
	}
	return nil
}

// saveCollection replaces the payload under key.
func (s *Store) saveCollection(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// TYPED COLLECTIONS
// =============================================================================

func (s *Store) LoadRequests(ctx context.Context) ([]schedule.TimeOffRequest, error) {
	var out []schedule.TimeOffRequest
	if err := s.loadCollection(ctx, KeyRequests, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveRequests(ctx context.Context, reqs []schedule.TimeOffRequest) error {
	return s.saveCollection(ctx, KeyRequests, reqs)
}

// AppendRequest loads the request list, appends the record and writes the
// list back. Called only after validation has succeeded.
func (s *Store) AppendRequest(ctx context.Context, rec schedule.TimeOffRequest) error {
	reqs, err := s.LoadRequests(ctx)
	if err != nil {
		return err
	}
	return s.SaveRequests(ctx, append(reqs, rec))
}

func (s *Store) LoadRoster(ctx context.Context) ([]schedule.Employee, error) {
	var out []schedule.Employee
	if err := s.loadCollection(ctx, KeyRoster, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveRoster(ctx context.Context, roster []schedule.Employee) error {
	return s.saveCollection(ctx, KeyRoster, roster)
}

func (s *Store) LoadTemplates(ctx context.Context) ([]schedule.WeeklyShiftTemplate, error) {
	var out []schedule.WeeklyShiftTemplate
	if err := s.loadCollection(ctx, KeyTemplates, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveTemplates(ctx context.Context, templates []schedule.WeeklyShiftTemplate) error {
	return s.saveCollection(ctx, KeyTemplates, templates)
}
