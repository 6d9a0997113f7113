package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/simulation"
)

// ErrRunNotFound is returned when no run exists for the requested id.
var ErrRunNotFound = errors.New("roast run not found")

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO roast_runs (id, created_at, label, kp, ki, kd, params, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunSQL = `
		SELECT id, created_at, label, kp, ki, kd, params, summary
		FROM roast_runs WHERE id = ?
	`

	selectRunsSQL = `SELECT id, created_at, label, kp, ki, kd, params, summary FROM roast_runs`
)

// Save inserts a completed run. Parameters and summary are stored as JSON.
func (r *RunSQLite) Save(ctx context.Context, run models.RoastRun) error {
	params, err := json.Marshal(run.Parameters)
	if err != nil {
		return fmt.Errorf("marshal run parameters: %w", err)
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		createdAt,
		run.Label,
		run.Kp,
		run.Ki,
		run.Kd,
		string(params),
		string(summary),
	)
	if err != nil {
		return fmt.Errorf("insert roast run %q: %w", run.ID, err)
	}
	return nil
}

// Get fetches a single run by id.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.RoastRun, error) {
	row := r.db.QueryRowContext(ctx, selectRunSQL, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoastRun{}, ErrRunNotFound
		}
		return models.RoastRun{}, err
	}
	return run, nil
}

// List returns runs within [from, to] (inclusive, zero means unbounded),
// ordered by creation time ascending.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time) ([]models.RoastRun, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC())
	}

	q := selectRunsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.RoastRun, 0, 16)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.RoastRun, error) {
	var (
		run     models.RoastRun
		label   sql.NullString
		params  string
		summary string
	)
	if err := row.Scan(
		&run.ID,
		&run.CreatedAt,
		&label,
		&run.Kp,
		&run.Ki,
		&run.Kd,
		&params,
		&summary,
	); err != nil {
		return models.RoastRun{}, err
	}
	run.Label = label.String
	run.CreatedAt = run.CreatedAt.UTC()

	var p simulation.Parameters
	if err := json.Unmarshal([]byte(params), &p); err != nil {
		return models.RoastRun{}, fmt.Errorf("unmarshal run parameters: %w", err)
	}
	run.Parameters = p

	var s models.RoastSummary
	if err := json.Unmarshal([]byte(summary), &s); err != nil {
		return models.RoastRun{}, fmt.Errorf("unmarshal run summary: %w", err)
	}
	run.Summary = s

	return run, nil
}
