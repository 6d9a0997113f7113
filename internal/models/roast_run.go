package models

import (
	"time"

	"roastsim/internal/simulation"
)

// RoastRun is one persisted simulation run: the inputs that produced it and
// the scalar summary. The full time series is not persisted; it is
// reproducible bit-for-bit from the parameters and gains.
type RoastRun struct {
	ID         string                `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	Label      string                `json:"label,omitempty"`
	Kp         float64               `json:"kp"`
	Ki         float64               `json:"ki"`
	Kd         float64               `json:"kd"`
	Parameters simulation.Parameters `json:"parameters"`
	Summary    RoastSummary          `json:"summary"`
}

// RoastSummary mirrors the scalar portion of a simulation result.
type RoastSummary struct {
	Info            string  `json:"info"`
	BeanCount       int     `json:"bean_count"`
	SurfaceArea     float64 `json:"surface_area"`
	BeanEnergy      string  `json:"bean_energy"`
	DeliveredEnergy string  `json:"delivered_energy"`
	Froude          float64 `json:"froude"`
	RadiativeLoss   string  `json:"radiative_loss"`
	FinalTemp       float64 `json:"final_temp"`
	TurnAtMin       float64 `json:"turn_at_min"`
	DryingAtMin     float64 `json:"drying_at_min"`
	FirstCrackAtMin float64 `json:"first_crack_at_min"`
}
