package repository

import (
	"context"
	"database/sql"
	"time"

	"roastsim/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RunRepo persists completed simulation runs.
type RunRepo interface {
	Save(ctx context.Context, run models.RoastRun) error
	Get(ctx context.Context, id string) (models.RoastRun, error)
	List(ctx context.Context, from, to time.Time) ([]models.RoastRun, error)
}

// EventRepo is the append-only milestone log.
type EventRepo interface {
	Append(ctx context.Context, e models.RoastEvent) error
	List(ctx context.Context, runID string, from, to time.Time, typ string) ([]models.RoastEvent, error)
}

type Repository struct {
	Runs   RunRepo
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs:   NewRunSQLite(db),
		Events: NewEventSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
