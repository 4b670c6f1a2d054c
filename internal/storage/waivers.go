package storage

import (
	"database/sql"
	"time"

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

type Waiver struct {
	ID int64 `json:"id"`
	audit.Waiver
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

func (db *DB) CreateWaiver(w audit.Waiver, createdBy string, expires time.Time) (int64, error) {
	now := formatTime(time.Now())
	res, err := db.conn.Exec(`
INSERT INTO waivers(product, locale, module, path, entity, reason, expires_at, created_by, created_at)
VALUES(?,?,?,?,?,?,?,?,?)`,
		nz(w.Product), nz(w.Locale), nz(w.Module), nz(w.Path), nz(w.Entity),
		w.Reason, formatTime(expires), createdBy, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RevokeWaiver marks a waiver revoked; revoking twice is a no-op.
func (db *DB) RevokeWaiver(id int64) error {
	_, err := db.conn.Exec(`UPDATE waivers SET revoked_at=? WHERE id=? AND revoked_at IS NULL`,
		formatTime(time.Now()), id)
	return err
}

func (db *DB) ListWaivers(activeOnly bool) ([]Waiver, error) {
	q := `
SELECT id, COALESCE(product,''), COALESCE(locale,''), COALESCE(module,''), COALESCE(path,''),
       COALESCE(entity,''), reason, expires_at, created_by, created_at, revoked_at
FROM waivers`
	args := []any{}
	if activeOnly {
		q += ` WHERE (revoked_at IS NULL) AND (expires_at > ?)`
		args = append(args, formatTime(time.Now()))
	}
	q += ` ORDER BY id DESC`
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Waiver
	for rows.Next() {
		var (
			w           Waiver
			exp, ca, ra sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.Product, &w.Locale, &w.Module, &w.Path, &w.Entity,
			&w.Reason, &exp, &w.CreatedBy, &ca, &ra); err != nil {
			return nil, err
		}
		if exp.Valid {
			if t, ok := parseTime(exp.String); ok {
				w.ExpiresAt = t
			}
		}
		if ca.Valid {
			if t, ok := parseTime(ca.String); ok {
				w.CreatedAt = t
			}
		}
		if ra.Valid {
			if t, ok := parseTime(ra.String); ok {
				w.RevokedAt = &t
			}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ActiveWaivers returns the unexpired, unrevoked waivers in the form the
// audit driver consumes.
func (db *DB) ActiveWaivers() ([]audit.Waiver, error) {
	ws, err := db.ListWaivers(true)
	if err != nil {
		return nil, err
	}
	out := make([]audit.Waiver, len(ws))
	for i, w := range ws {
		out[i] = w.Waiver
	}
	return out, nil
}

func nz(s string) any {
	if s == "" {
		return nil
	}
	return s
}
