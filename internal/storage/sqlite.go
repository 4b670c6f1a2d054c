package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

var ErrNotFound = errors.New("not found")

// timeLayout is fixed width so stored timestamps order correctly as text.
// RFC3339Nano trims trailing zeros, which breaks ORDER BY on the column.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// parseTime also accepts rows written before timeLayout was fixed width.
func parseTime(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DB is the concrete storage backed by SQLite.
type DB struct {
	conn *sql.DB
}

// OpenSQLite opens (and creates if missing) a SQLite DB at path.
func OpenSQLite(path string) (*DB, error) {
	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	c, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &DB{conn: c}, nil
}

func (db *DB) Close() error { return db.conn.Close() }

// CreateSchema ensures tables exist.
func (db *DB) CreateSchema() error {
	_, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id         TEXT PRIMARY KEY,
  started_at TEXT,          -- timeLayout
  product    TEXT NOT NULL,
  locale     TEXT,
  source     TEXT,
  errors     INTEGER NOT NULL DEFAULT 0,
  reports    INTEGER NOT NULL DEFAULT 0,
  run_json   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
  run_id  TEXT NOT NULL,
  seq     INTEGER NOT NULL,
  kind    TEXT NOT NULL,
  module  TEXT NOT NULL,
  path    TEXT NOT NULL,
  entity  TEXT,
  level   INTEGER NOT NULL,   -- 1 report, 2 error
  rule    TEXT,
  PRIMARY KEY (run_id, seq),
  FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_product ON runs(product, locale);

CREATE TABLE IF NOT EXISTS waivers (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product     TEXT,              -- NULL = any
  locale      TEXT,              -- NULL = any
  module      TEXT,              -- NULL = any
  path        TEXT,              -- NULL = any
  entity      TEXT,              -- NULL = any; substring match
  reason      TEXT NOT NULL,
  expires_at  TEXT NOT NULL,     -- timeLayout
  created_by  TEXT NOT NULL,
  created_at  TEXT NOT NULL,
  revoked_at  TEXT               -- NULL = active
);
`)
	return err
}

// SaveRun upserts a run JSON and (re)writes its results.
func (db *DB) SaveRun(run *audit.Run) error {
	b, err := json.Marshal(run)
	if err != nil {
		return err
	}
	ts := formatTime(run.StartedAt)

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, product, locale, source, errors, reports, run_json)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET started_at=excluded.started_at, product=excluded.product,
           locale=excluded.locale, source=excluded.source, errors=excluded.errors,
           reports=excluded.reports, run_json=excluded.run_json`,
		run.ID, ts, run.Product, run.Locale, run.Source, run.Summary.Errors, run.Summary.Reports, string(b),
	); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM results WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if len(run.Results) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO results (run_id, seq, kind, module, path, entity, level, rule)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, r := range run.Results {
			if _, err := stmt.Exec(
				run.ID,
				i,
				string(r.Kind),
				r.Module,
				r.Path,
				r.Entity,
				int(r.Level),
				r.Rule,
			); err != nil {
				return fmt.Errorf("save result %d of %s: %w", i, run.ID, err)
			}
		}
	}

	return tx.Commit()
}

// LoadRun returns the full run (from stored JSON).
func (db *DB) LoadRun(id string) (audit.Run, error) {
	return db.loadRunJSON(db.conn.QueryRow(`SELECT run_json FROM runs WHERE id = ?`, id))
}

// LoadLatestRun returns the most recently started run.
func (db *DB) LoadLatestRun() (audit.Run, error) {
	return db.loadRunJSON(db.conn.QueryRow(`SELECT run_json FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`))
}

func (db *DB) loadRunJSON(row *sql.Row) (audit.Run, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return audit.Run{}, ErrNotFound
		}
		return audit.Run{}, err
	}
	var run audit.Run
	if err := json.Unmarshal([]byte(s), &run); err != nil {
		return audit.Run{}, err
	}
	return run, nil
}
