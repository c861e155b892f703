package repo

import (
	"context"
	"database/sql"
	"strings"

	"github.com/briantully/acquia-cli/internal/domain"
)

// Repo reads the local audit log.
type Repo struct {
	DB *sql.DB
}

// EventFilters narrow a LatestEvents query.
type EventFilters struct {
	Type        string
	AppID       string
	Environment string
}

// LatestEvents returns the newest audit events first.
func (r Repo) LatestEvents(ctx context.Context, n int, f EventFilters) ([]domain.AuditEvent, error) {
	if n <= 0 {
		n = 20
	}
	q := `SELECT id,ts,type,COALESCE(app_id,'') AS app_id,COALESCE(environment,'') AS environment,payload_json FROM events`
	var where []string
	var args []any
	if f.Type != "" {
		where = append(where, "type=?")
		args = append(args, f.Type)
	}
	if f.AppID != "" {
		where = append(where, "app_id=?")
		args = append(args, f.AppID)
	}
	if f.Environment != "" {
		where = append(where, "environment=?")
		args = append(args, f.Environment)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC LIMIT ?"
	args = append(args, n)

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.AuditEvent
	for rows.Next() {
		var e domain.AuditEvent
		if err := rows.Scan(&e.ID, &e.TS, &e.Type, &e.AppID, &e.Environment, &e.Payload); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
