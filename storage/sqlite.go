// Package storage keeps a log of finished simulation runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/sheikhrachel/go-lifelike/utils"
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// Run summarizes one simulation session.
type Run struct {
	ID              int64
	Rule            string
	Size            int
	Seed            int64
	Pattern         string
	Generations     int
	FinalPopulation int
	PeakPopulation  int
	Restarts        int
	EndReason       string // "max generations", "interrupted", "extinction", ...
	Duration        time.Duration
	CreatedAt       time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := utils.ExpandHome(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "[Open]")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "[Open] cannot create directory %s", dir)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "[Open] cannot open database")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[Open] cannot connect to database")
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "[Open] migration failed")
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			rule TEXT NOT NULL,
			size INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			pattern TEXT NOT NULL DEFAULT '',
			generations INTEGER NOT NULL,
			final_population INTEGER NOT NULL DEFAULT 0,
			peak_population INTEGER NOT NULL DEFAULT 0,
			restarts INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_rule ON runs(rule);
		CREATE INDEX IF NOT EXISTS idx_runs_longest ON runs(rule, generations DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (rule, size, seed, pattern, generations, final_population, peak_population, restarts, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Rule, r.Size, r.Seed, r.Pattern, r.Generations,
		r.FinalPopulation, r.PeakPopulation, r.Restarts, r.EndReason, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, errors.Wrap(err, "[SaveRun] cannot save run")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "[SaveRun] cannot get inserted ID")
	}

	return id, nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, rule, size, seed, pattern, generations, final_population, peak_population,
		        restarts, end_reason, duration_ms, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// LongestRuns returns the runs with the most generations for a rule.
func (s *Store) LongestRuns(rule string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, rule, size, seed, pattern, generations, final_population, peak_population,
		        restarts, end_reason, duration_ms, created_at
		 FROM runs
		 WHERE rule = ?
		 ORDER BY generations DESC, id ASC
		 LIMIT ?`,
		rule, limit,
	)
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return errors.Wrap(err, "[ClearRuns] cannot clear runs")
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "[queryRuns] cannot query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.Rule, &r.Size, &r.Seed, &r.Pattern, &r.Generations,
			&r.FinalPopulation, &r.PeakPopulation, &r.Restarts, &r.EndReason, &durationMS, &createdAt); err != nil {
			return nil, errors.Wrap(err, "[queryRuns] cannot scan row")
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "[queryRuns] row iteration error")
	}

	return runs, nil
}
