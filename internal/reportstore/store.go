// Package reportstore keeps a history of derivation reports in SQLite.
package reportstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/javerbukh/jwebbinar-prep/report"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("reportstore: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id         TEXT PRIMARY KEY,
    target     TEXT NOT NULL,
    created_at TEXT NOT NULL,
    digest     TEXT NOT NULL,
    report     BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(digest);
`

// Run is one stored report.
type Run struct {
	ID        string
	Target    string
	CreatedAt time.Time
	Digest    string
	Report    report.Report
}

// Store is a SQLite-backed run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open report db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate report db: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores r under a new run ID.
func (s *Store) Save(r report.Report) (Run, error) {
	body, err := r.MarshalCBOR()
	if err != nil {
		return Run{}, fmt.Errorf("encode report: %w", err)
	}

	digest, err := report.Digest(r)
	if err != nil {
		return Run{}, fmt.Errorf("digest report: %w", err)
	}

	run := Run{
		ID:        uuid.New().String(),
		Target:    r.Target,
		CreatedAt: s.now().UTC(),
		Digest:    digest,
		Report:    r,
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, target, created_at, digest, report) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Target, run.CreatedAt.Format(timeLayout), run.Digest, body,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	return run, nil
}

// Get returns the run id with its decoded report.
func (s *Store) Get(id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}

	row := s.db.QueryRow(`SELECT id, target, created_at, digest, report FROM runs WHERE id = ?`, id)

	var (
		run     Run
		created string
		body    []byte
	)

	if err := row.Scan(&run.ID, &run.Target, &created, &run.Digest, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}

		return Run{}, fmt.Errorf("get run: %w", err)
	}

	var err error

	if run.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}

	if run.Report, err = report.ReadCBOR(body); err != nil {
		return Run{}, fmt.Errorf("decode report: %w", err)
	}

	return run, nil
}

// List returns the most recent runs first, without their reports. A
// non-positive limit returns every run.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(
		`SELECT id, target, created_at, digest FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run

	for rows.Next() {
		var (
			run     Run
			created string
		)

		if err := rows.Scan(&run.ID, &run.Target, &created, &run.Digest); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		if run.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}
