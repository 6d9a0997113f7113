package service

import (
	"context"
	"errors"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/repository"
)

type HistoryService struct {
	runRepo repository.RunRepo
}

func NewHistoryService(runRepo repository.RunRepo) *HistoryService {
	return &HistoryService{runRepo: runRepo}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// GetRun returns one stored run.
func (s *HistoryService) GetRun(ctx context.Context, id string) (models.RoastRun, error) {
	return s.runRepo.Get(ctx, id)
}

// ListRuns returns stored runs inside the (normalized, validated) range.
func (s *HistoryService) ListRuns(ctx context.Context, f RunFilter) ([]models.RoastRun, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.runRepo.List(ctx, from, to)
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
