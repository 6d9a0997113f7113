package models

import "time"

// Roast event types.
const (
	EventDrying     = "DRYING"
	EventFirstCrack = "FIRST_CRACK"
	EventTurnPoint  = "TURN_POINT"
	EventDrop       = "DROP"
)

// RoastEvent is one milestone a run latched, as an append-only log entry.
type RoastEvent struct {
	EventID     string    `json:"event_id"`
	RunID       string    `json:"run_id"`
	OccurredAt  time.Time `json:"occurred_at"` // wall-clock append time
	Type        string    `json:"type"`        // DRYING | FIRST_CRACK | TURN_POINT | DROP
	AtMinute    float64   `json:"at_minute"`   // simulated roast time
	Description string    `json:"description"`
}
