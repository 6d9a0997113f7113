package service

import (
	"context"
	"strings"

	"roastsim/internal/models"
	"roastsim/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.RoastEvent, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.eventRepo.List(ctx, strings.TrimSpace(f.RunID), from, to, normalizeEventType(f.Type))
}
