package simulation

import (
	"errors"
	"fmt"
)

// Parameters describes a single batch roast. All fields are read-only for the
// duration of a run.
type Parameters struct {
	BatchGrams     float64  `json:"batch_grams"`      // green weight in grams
	Moisture       float64  `json:"moisture"`         // moisture fraction, 0..1
	RatedMJ        float64  `json:"rated_mj"`         // MJ/hour delivered at 100% power
	AirTemp        float64  `json:"air_temp"`         // inlet air temperature °C
	BeanTemp       float64  `json:"bean_temp"`        // bean temperature at charge °C
	FirstCrackTemp float64  `json:"first_crack_temp"` // exothermic transition onset °C
	ChargeTemp     float64  `json:"charge_temp"`      // drum temperature at charge °C
	DryingTemp     float64  `json:"drying_temp"`      // yellowing/drying onset °C
	PostCrackLoss  float64  `json:"post_crack_loss"`  // dry-mass loss factor past first crack
	Duration       float64  `json:"duration_min"`     // drop time in minutes
	DrumSpeed      float64  `json:"drum_speed"`       // relative drum/air factor
	Response       float64  `json:"response"`         // relative thermal response factor
	InitialPower   float64  `json:"initial_power"`    // starting power setting %
	PowerSchedule  []string `json:"power_schedule"`   // "<temp>,<mm[:ss]>,<power>" entries
	BeanDiameter   float64  `json:"bean_diameter_mm"`
	BeanDensity    float64  `json:"bean_density"` // kg/m³
	SpecificHeat   float64  `json:"specific_heat"` // kJ/(kg·K)
	DrumRPM        float64  `json:"drum_rpm"`
	DrumDiameter   float64  `json:"drum_diameter_mm"`
	DrumLength     float64  `json:"drum_length_mm"`
	DrumEmissivity float64  `json:"drum_emissivity"`
	BeanEmissivity float64  `json:"bean_emissivity"`
}

// ErrInvalidParameters marks the only hard failure the engine reports: the
// run is rejected up front instead of producing garbage output.
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// Validate rejects parameter sets the engine cannot integrate.
func (p Parameters) Validate() error {
	if p.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g min", ErrInvalidParameters, p.Duration)
	}
	if p.BatchGrams <= 0 {
		return fmt.Errorf("%w: batch mass must be positive, got %g g", ErrInvalidParameters, p.BatchGrams)
	}
	if p.Moisture < 0 || p.Moisture > 1 {
		return fmt.Errorf("%w: moisture fraction must be in [0,1], got %g", ErrInvalidParameters, p.Moisture)
	}
	return nil
}

// DefaultParameters returns the reference 300 g / 12 minute batch used by the
// playback endpoint and the examples.
func DefaultParameters() Parameters {
	return Parameters{
		BatchGrams:     300,
		Moisture:       0.10,
		RatedMJ:        4.0,
		AirTemp:        240,
		BeanTemp:       20,
		FirstCrackTemp: 193,
		ChargeTemp:     215,
		DryingTemp:     160,
		PostCrackLoss:  2.0,
		Duration:       12.0,
		DrumSpeed:      3.0,
		Response:       3.0,
		InitialPower:   90,
		PowerSchedule: []string{
			"140,4:50,80",
			"160,6:00,70",
			"170,6:45,60",
			"180,7:45,40",
			"190,9:30,20",
		},
		BeanDiameter:   6.0,
		BeanDensity:    1000,
		SpecificHeat:   1.2,
		DrumRPM:        50,
		DrumDiameter:   150,
		DrumLength:     150,
		DrumEmissivity: 0.25,
		BeanEmissivity: 0.95,
	}
}
