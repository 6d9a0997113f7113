package service

import (
	"context"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/repository"
	"roastsim/internal/simulation"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Roaster runs a simulation, persists the run, and logs its milestones.
type Roaster interface {
	Simulate(ctx context.Context, req SimulationRequest) (models.RoastRun, *simulation.Result, error)
}

// History exposes stored runs.
type History interface {
	GetRun(ctx context.Context, id string) (models.RoastRun, error)
	ListRuns(ctx context.Context, f RunFilter) ([]models.RoastRun, error)
}

// EventLog exposes the append-only milestone log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RoastEvent, error)
}

// PIDGains configures the controller for one run.
type PIDGains struct {
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
	Kd float64 `json:"kd"`
}

// SimulationRequest is everything a caller supplies to run a roast. A nil
// TargetProfile selects the built-in default curve.
type SimulationRequest struct {
	Label         string
	Parameters    simulation.Parameters
	Gains         PIDGains
	TargetProfile []simulation.ProfilePoint
}

// RunFilter bounds a run listing by creation time (inclusive; zero = open).
type RunFilter struct {
	From time.Time
	To   time.Time
}

// LogFilter narrows the milestone log by run, time range, and type.
type LogFilter struct {
	RunID string
	From  time.Time
	To    time.Time
	Type  string // "", "DRYING", "FIRST_CRACK", "TURN_POINT", "DROP"
}

// Service aggregates all sub-services.
type Service struct {
	Roaster
	History
	EventLog
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Roaster:       NewRoasterService(repos.Runs, repos.Events),
		History:       NewHistoryService(repos.Runs),
		EventLog:      NewEventLogService(repos.Events),
		Authorization: NewAuthService(repos.Auth),
	}
}
