package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
)

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Product   string    `json:"product"`
	Locale    string    `json:"locale,omitempty"`
	Source    string    `json:"source,omitempty"`
	Errors    int       `json:"errors"`
	Reports   int       `json:"reports"`
}

// ListRuns returns a lightweight list of runs with counts.
func (db *DB) ListRuns(limit, offset int) ([]RunRow, error) {
	const q = `
		SELECT id, started_at, product, COALESCE(locale,''), COALESCE(source,''), errors, reports
		  FROM runs
		 ORDER BY started_at DESC, id DESC
		 LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var rr RunRow
		var startedAtStr string
		if err := rows.Scan(&rr.ID, &startedAtStr, &rr.Product, &rr.Locale, &rr.Source, &rr.Errors, &rr.Reports); err != nil {
			return nil, err
		}
		if t, ok := parseTime(startedAtStr); ok {
			rr.StartedAt = t
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

// ListResults returns results for a run at or above a minimum level.
func (db *DB) ListResults(runID string, minLevel filter.Verdict) ([]audit.Result, error) {
	const q = `
		SELECT kind, module, path, COALESCE(entity,''), level, COALESCE(rule,'')
		  FROM results
		 WHERE run_id = ? AND level >= ?
		 ORDER BY seq`
	rows, err := db.conn.Query(q, runID, int(minLevel))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []audit.Result
	for rows.Next() {
		var r audit.Result
		var kind string
		var level int
		if err := rows.Scan(&kind, &r.Module, &r.Path, &r.Entity, &level, &r.Rule); err != nil {
			return nil, err
		}
		r.Kind = audit.Kind(kind)
		r.Level = filter.Verdict(level)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) HasRun(id string) (bool, error) {
	const q = `SELECT 1 FROM runs WHERE id = ? LIMIT 1`
	var one int
	err := db.conn.QueryRow(q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}
