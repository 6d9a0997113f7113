package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/repository"
)

// fakeRunRepo is a minimal stub satisfying repository.RunRepo.
type fakeRunRepo struct {
	// captured inputs
	saved   []models.RoastRun
	gotID   string
	gotFrom time.Time
	gotTo   time.Time

	// configured outputs
	run     models.RoastRun
	runs    []models.RoastRun
	saveErr error
	getErr  error
	listErr error

	listCalls int
}

func (f *fakeRunRepo) Save(ctx context.Context, run models.RoastRun) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, run)
	return nil
}

func (f *fakeRunRepo) Get(ctx context.Context, id string) (models.RoastRun, error) {
	f.gotID = id
	return f.run, f.getErr
}

func (f *fakeRunRepo) List(ctx context.Context, from, to time.Time) ([]models.RoastRun, error) {
	f.listCalls++
	f.gotFrom = from
	f.gotTo = to
	return f.runs, f.listErr
}

func TestHistoryService_GetRun(t *testing.T) {
	t.Parallel()

	frepo := &fakeRunRepo{run: models.RoastRun{ID: "run-9"}}
	svc := NewHistoryService(frepo)

	got, err := svc.GetRun(context.Background(), "run-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "run-9" || frepo.gotID != "run-9" {
		t.Fatalf("get: got %+v, repo id %q", got, frepo.gotID)
	}

	frepo.getErr = repository.ErrRunNotFound
	if _, err := svc.GetRun(context.Background(), "missing"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestHistoryService_ListRuns_NormalizesRange(t *testing.T) {
	t.Parallel()

	frepo := &fakeRunRepo{runs: []models.RoastRun{{ID: "a"}, {ID: "b"}}}
	svc := NewHistoryService(frepo)

	fromLocal := mustTimeIn(fixedZone("UTC+2", 2*3600), 2026, time.August, 10, 10, 0, 0)
	out, err := svc.ListRuns(context.Background(), RunFilter{From: fromLocal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(out))
	}

	wantFrom := time.Date(2026, time.August, 10, 8, 0, 0, 0, time.UTC)
	if !frepo.gotFrom.Equal(wantFrom) {
		t.Fatalf("repo gotFrom=%v; want %v", frepo.gotFrom, wantFrom)
	}
	if !frepo.gotTo.IsZero() {
		t.Fatalf("open 'to' bound should stay zero, got %v", frepo.gotTo)
	}
}

func TestHistoryService_ListRuns_InvalidRange(t *testing.T) {
	t.Parallel()

	frepo := &fakeRunRepo{}
	svc := NewHistoryService(frepo)

	_, err := svc.ListRuns(context.Background(), RunFilter{
		From: time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange, got %v", err)
	}
	if frepo.listCalls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.listCalls)
	}
}

func TestHistoryService_ListRuns_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeRunRepo{listErr: errors.New("db down")}
	svc := NewHistoryService(frepo)

	if _, err := svc.ListRuns(context.Background(), RunFilter{}); !errors.Is(err, frepo.listErr) {
		t.Fatalf("expected repo error to propagate, got %v", err)
	}
}
