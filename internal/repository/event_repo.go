package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"roastsim/internal/models"

	"github.com/google/uuid"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts a milestone. Missing EventID or OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.RoastEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO roast_events (id, run_id, occurred_at, type, at_minute, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.EventID,
		e.RunID,
		e.OccurredAt.Format("2006-01-02 15:04:05"),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.AtMinute,
		e.Description,
	)
	return err
}

// List returns events filtered by run, [from, to] (inclusive), and/or type,
// ordered by append time ascending.
func (r *EventSQLite) List(ctx context.Context, runID string, from, to time.Time, typ string) ([]models.RoastEvent, error) {
	var (
		conds []string
		args  []any
	)

	if runID != "" {
		conds = append(conds, "run_id = ?")
		args = append(args, runID)
	}
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, run_id, occurred_at, type, at_minute, message FROM roast_events`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.RoastEvent, 0, 16)
	for rows.Next() {
		var ev models.RoastEvent
		if err := rows.Scan(&ev.EventID, &ev.RunID, &ev.OccurredAt, &ev.Type, &ev.AtMinute, &ev.Description); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
