// Package handles keeps a local record of submitted remote jobs. Job names
// are the only durable handle the platform gives back; persisting them lets
// polling resume after a process restart instead of relying on operator
// memory.
package handles

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Kind labels what sort of remote resource a handle refers to.
const (
	KindRecommendation = "recommendation"
	KindTraining       = "training"
	KindTuning         = "tuning"
	KindEndpoint       = "endpoint"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_handles (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    name         TEXT NOT NULL UNIQUE,
    kind         TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT '',
    detail       TEXT NOT NULL DEFAULT '',
    submitted_at TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_handles_kind ON job_handles(kind);
`

// Record is one locally tracked remote job or endpoint.
type Record struct {
	ID          int64
	Name        string
	Kind        string
	Status      string
	Detail      string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}

// Store provides SQLite-backed storage for job handles.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the per-user handle database location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".lattice-cli")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return filepath.Join(dir, "handles.db"), nil
}

// Open opens (or creates) the handle database at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open handle db: %w", err)
	}

	// WAL keeps concurrent CLI invocations from blocking each other.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert records a newly submitted job. Names are unique; inserting a name
// twice is an error, mirroring the platform's own uniqueness rule.
func (s *Store) Insert(r Record) error {
	now := time.Now().UTC().Format(time.RFC3339)
	submitted := now
	if !r.SubmittedAt.IsZero() {
		submitted = r.SubmittedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`
		INSERT INTO job_handles (name, kind, status, detail, submitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.Name, r.Kind, r.Status, r.Detail, submitted, now,
	)
	if err != nil {
		return fmt.Errorf("insert handle %q: %w", r.Name, err)
	}
	return nil
}

// UpdateStatus refreshes the cached status of a handle. The cache is for
// listing only; waits always re-query the platform.
func (s *Store) UpdateStatus(name, status, detail string) error {
	res, err := s.db.Exec(`
		UPDATE job_handles SET status = ?, detail = ?, updated_at = ?
		WHERE name = ?`,
		status, detail, time.Now().UTC().Format(time.RFC3339), name,
	)
	if err != nil {
		return fmt.Errorf("update handle %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no handle named %q", name)
	}
	return nil
}

// Get returns one handle by name.
func (s *Store) Get(name string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, name, kind, status, detail, submitted_at, updated_at
		FROM job_handles WHERE name = ?`, name)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no handle named %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get handle %q: %w", name, err)
	}
	return r, nil
}

// List returns handles, newest first, optionally filtered by kind.
func (s *Store) List(kind string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, kind, status, detail, submitted_at, updated_at
		FROM job_handles`
	args := []any{}
	if kind != "" {
		query += " WHERE kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list handles: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// Delete removes a handle. The remote resource is untouched.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM job_handles WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete handle %q: %w", name, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var r Record
	var submittedAt, updatedAt string
	if err := row.Scan(&r.ID, &r.Name, &r.Kind, &r.Status, &r.Detail, &submittedAt, &updatedAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, submittedAt); err == nil {
		r.SubmittedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		r.UpdatedAt = t
	}
	return &r, nil
}
