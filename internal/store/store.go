// SPDX-License-Identifier: MIT

// Package store persists clustering runs in a SQLite database
// (modernc.org/sqlite, no cgo).
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/katalvlaran/spectral"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("store: run not found")

// Run is one recorded pipeline execution.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string // input path or generator description
	Nodes     int
	Config    spectral.Config
	Labels    []int
	// CrossEdges counts edges the filter removed (u<v for undirected graphs).
	CrossEdges int
	// Timings maps stage name to duration.
	Timings map[string]time.Duration
}

// Store is a run-history database handle. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	source      TEXT NOT NULL,
	nodes       INTEGER NOT NULL,
	config      TEXT NOT NULL,
	labels      TEXT NOT NULL,
	cross_edges INTEGER NOT NULL,
	timings     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", path)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "store: create schema")
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts r, assigning a new UUID and the current time when they are
// empty, and returns the stored value.
func (s *Store) Save(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	cfgJSON, err := json.Marshal(r.Config)
	if err != nil {
		return Run{}, errors.Wrap(err, "store: encode config")
	}
	labelsJSON, err := json.Marshal(r.Labels)
	if err != nil {
		return Run{}, errors.Wrap(err, "store: encode labels")
	}
	timingsJSON, err := json.Marshal(r.Timings)
	if err != nil {
		return Run{}, errors.Wrap(err, "store: encode timings")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, nodes, config, labels, cross_edges, timings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), r.Source, r.Nodes,
		string(cfgJSON), string(labelsJSON), r.CrossEdges, string(timingsJSON))
	if err != nil {
		return Run{}, errors.Wrapf(err, "store: insert run %s", r.ID)
	}

	return r, nil
}

// Get loads one run by id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, nodes, config, labels, cross_edges, timings
		 FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errors.Wrapf(ErrNotFound, "store: id %s", id)
	}

	return r, err
}

// List returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, created_at, source, nodes, config, labels, cross_edges, timings
	      FROM runs ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, errors.Wrap(rows.Err(), "store: list runs")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r                               Run
		created                         int64
		cfgJSON, labelsJSON, timingJSON string
	)
	if err := sc.Scan(&r.ID, &created, &r.Source, &r.Nodes, &cfgJSON, &labelsJSON, &r.CrossEdges, &timingJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, errors.Wrap(err, "store: scan run")
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	if err := json.Unmarshal([]byte(cfgJSON), &r.Config); err != nil {
		return Run{}, errors.Wrapf(err, "store: decode config of %s", r.ID)
	}
	if err := json.Unmarshal([]byte(labelsJSON), &r.Labels); err != nil {
		return Run{}, errors.Wrapf(err, "store: decode labels of %s", r.ID)
	}
	if err := json.Unmarshal([]byte(timingJSON), &r.Timings); err != nil {
		return Run{}, errors.Wrapf(err, "store: decode timings of %s", r.ID)
	}

	return r, nil
}
