package service

import (
	"context"
	"fmt"
	"time"

	"roastsim/internal/models"
	"roastsim/internal/repository"
	"roastsim/internal/simulation"

	"github.com/google/uuid"
)

type RoasterService struct {
	runRepo   repository.RunRepo
	eventRepo repository.EventRepo
}

func NewRoasterService(runRepo repository.RunRepo, eventRepo repository.EventRepo) *RoasterService {
	return &RoasterService{runRepo: runRepo, eventRepo: eventRepo}
}

// Simulate runs one roast with a fresh PID controller, stores the run, and
// appends a milestone event per latched one-shot. The returned result carries
// the full time series; only parameters and summary are persisted.
func (s *RoasterService) Simulate(ctx context.Context, req SimulationRequest) (models.RoastRun, *simulation.Result, error) {
	pid := simulation.NewPIDController(req.Gains.Kp, req.Gains.Ki, req.Gains.Kd)

	result, err := simulation.Run(req.Parameters, pid, req.TargetProfile)
	if err != nil {
		return models.RoastRun{}, nil, err
	}

	run := models.RoastRun{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Label:      req.Label,
		Kp:         req.Gains.Kp,
		Ki:         req.Gains.Ki,
		Kd:         req.Gains.Kd,
		Parameters: req.Parameters,
		Summary:    summaryOf(result),
	}

	if err := s.runRepo.Save(ctx, run); err != nil {
		return models.RoastRun{}, nil, err
	}
	if err := s.appendMilestones(ctx, run.ID, result); err != nil {
		return models.RoastRun{}, nil, err
	}
	return run, result, nil
}

// appendMilestones logs each latched one-shot plus the drop itself.
func (s *RoasterService) appendMilestones(ctx context.Context, runID string, r *simulation.Result) error {
	type milestone struct {
		typ string
		at  float64
		msg string
	}
	ms := make([]milestone, 0, 4)
	if r.Milestones.TurnAt > 0 {
		ms = append(ms, milestone{models.EventTurnPoint, r.Milestones.TurnAt, "measured temperature turned"})
	}
	if r.Milestones.DryingAt > 0 {
		ms = append(ms, milestone{models.EventDrying, r.Milestones.DryingAt, "drying phase reached"})
	}
	if r.Milestones.FirstCrackAt > 0 {
		ms = append(ms, milestone{models.EventFirstCrack, r.Milestones.FirstCrackAt, "first crack reached"})
	}
	ms = append(ms, milestone{models.EventDrop, r.Milestones.DropAt, fmt.Sprintf("dropped at %.0f°C", r.FinalTemp)})

	for _, m := range ms {
		e := models.RoastEvent{
			EventID:     uuid.NewString(),
			RunID:       runID,
			OccurredAt:  time.Now().UTC(),
			Type:        m.typ,
			AtMinute:    m.at,
			Description: m.msg,
		}
		if err := s.eventRepo.Append(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func summaryOf(r *simulation.Result) models.RoastSummary {
	return models.RoastSummary{
		Info:            r.Info,
		BeanCount:       r.BeanCount,
		SurfaceArea:     r.SurfaceArea,
		BeanEnergy:      r.BeanEnergy,
		DeliveredEnergy: r.DeliveredEnergy,
		Froude:          r.Froude,
		RadiativeLoss:   r.RadiativeLoss,
		FinalTemp:       r.FinalTemp,
		TurnAtMin:       r.Milestones.TurnAt,
		DryingAtMin:     r.Milestones.DryingAt,
		FirstCrackAtMin: r.Milestones.FirstCrackAt,
	}
}
