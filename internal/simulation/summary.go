package simulation

import (
	"fmt"
	"math"
)

// PlotGroup is the plot-ready descriptor the rendering collaborator consumes:
// parallel series/label/color lists plus axis labels. The core never renders.
type PlotGroup struct {
	Series  [][]Point `json:"series"`
	Labels  []string  `json:"labels"`
	Colors  []string  `json:"colors"`
	XLabel  string    `json:"x_label"`
	YLabel  string    `json:"y_label"`
	Y2Label string    `json:"y2_label,omitempty"`
}

// Milestones are the one-shot event timestamps in simulated minutes.
// Zero means the event never latched.
type Milestones struct {
	TurnAt       float64 `json:"turn_at_min"`
	DryingAt     float64 `json:"drying_at_min"`
	FirstCrackAt float64 `json:"first_crack_at_min"`
	DropAt       float64 `json:"drop_at_min"`
}

// Result is the immutable output of one run.
type Result struct {
	Plots           []PlotGroup `json:"plots"`
	Info            string      `json:"info"`
	BeanCount       int         `json:"bean_count"`
	SurfaceArea     float64     `json:"surface_area"`
	BeanEnergy      string      `json:"bean_energy"`
	DeliveredEnergy string      `json:"delivered_energy"`
	Froude          float64     `json:"froude"`
	RadiativeLoss   string      `json:"radiative_loss"`
	FinalTemp       float64     `json:"final_temp"`
	Milestones      Milestones  `json:"milestones"`
	Waypoints       []Waypoint  `json:"waypoints,omitempty"`
}

// assemble turns the engine's final state into scalar metrics, formatted
// strings, and the plot groups. Pure function of its inputs.
func assemble(p Parameters, ser *series, st *runState) *Result {
	kg := p.BatchGrams / 1000
	finalTemp := st.finalMeasured

	turnLabel := fmt.Sprintf("t_Turn: %s", clockLabel(st.turnAt))

	phases := " t_Yellow: -"
	if st.dryingAt > 0 {
		phases = fmt.Sprintf(" t_Yellow: %s", clockLabel(st.dryingAt))
	}
	if st.firstCrackAt > 0 {
		phases += fmt.Sprintf(", t_FC: %s", clockLabel(st.firstCrackAt))
	}
	phases += fmt.Sprintf(" , t_Drop: %s", clockLabel(p.Duration))

	dropLabel := "T_Drop: NaN°C"
	if isFinite(finalTemp) {
		dropLabel = fmt.Sprintf("T_Drop: %d°C", int(finalTemp))
	}

	// Phase percentages need both drying and first crack latched.
	ratios := "-"
	if st.firstCrackAt > 0 && st.dryingAt > 0 {
		drop := math.Floor(p.Duration)
		brown := st.firstCrackAt - st.dryingAt
		dev := drop - st.firstCrackAt
		ratios = fmt.Sprintf("Yellow: %.1f%%, Brown: %.1f%%, Dev: %.1f%%",
			st.dryingAt*100/drop, brown*100/drop, dev*100/drop)
	}

	// Sphere-packing estimate of bean count and total surface area.
	beanMass := (4.0 / 3.0) * math.Pi * math.Pow(p.BeanDiameter/2, 3) * p.BeanDensity
	beanCount := 0
	if beanMass > 0 {
		beanCount = int(kg / beanMass)
	}
	surfaceArea := float64(beanCount) * 4 * math.Pi * math.Pow(p.BeanDiameter/2, 2)

	absorbed := kg * p.SpecificHeat * (finalTemp - p.BeanTemp)
	beanEnergy := fmt.Sprintf("%.3f MJ", absorbed/1000)
	if absorbed <= 1000 {
		beanEnergy = fmt.Sprintf("%d kJ", int(absorbed))
	}

	delivered := fmt.Sprintf("%.3f kJ", st.deliveredMJ*1000)
	if st.deliveredMJ >= 1 {
		delivered = fmt.Sprintf("%.3f MJ", st.deliveredMJ)
	}

	radiativeLoss := "Radiative: NaN kJ"
	if isFinite(st.radiative) {
		radiativeLoss = fmt.Sprintf("%d kJ", int(st.radiative/1000))
	}

	powerLabel := fmt.Sprintf("Power: %.1f kBTU, %.1f kW",
		p.RatedMJ*948/1000, p.RatedMJ*1e3/3600)

	info := fmt.Sprintf("%s, %s, %s, %s, %s", turnLabel, phases, dropLabel, ratios, powerLabel)

	return &Result{
		Plots:           plotGroups(ser),
		Info:            info,
		BeanCount:       beanCount,
		SurfaceArea:     surfaceArea,
		BeanEnergy:      beanEnergy,
		DeliveredEnergy: delivered,
		Froude:          st.froude,
		RadiativeLoss:   radiativeLoss,
		FinalTemp:       finalTemp,
		Milestones: Milestones{
			TurnAt:       st.turnAt,
			DryingAt:     st.dryingAt,
			FirstCrackAt: st.firstCrackAt,
			DropAt:       p.Duration,
		},
		Waypoints: st.waypoints,
	}
}

// clockLabel formats fractional minutes as "3m:20s". Unset (zero or negative)
// timestamps format as "0m:0s".
func clockLabel(minutes float64) string {
	if minutes <= 0 {
		return "0m:0s"
	}
	whole := math.Floor(minutes)
	return fmt.Sprintf("%dm:%ds", int(whole), int((minutes-whole)*60))
}

func plotGroups(ser *series) []PlotGroup {
	return []PlotGroup{
		{
			Series:  [][]Point{ser.Measured, ser.Bean, ser.ROR, ser.Target},
			Labels:  []string{"Bean Temp", "True Bean Temp", "Rate Of Rise", "Target Temp"},
			Colors:  []string{"purple", "red", "skyblue", "black"},
			XLabel:  "Time (min)",
			YLabel:  "Temperature (°C)",
			Y2Label: "ROR (°C/min)",
		},
		{
			Series: [][]Point{ser.Power, ser.Mass, ser.Moisture},
			Labels: []string{"Power (%)", "Weight (%)", "Water (%)"},
			Colors: []string{"orange", "brown", "skyblue"},
			XLabel: "Time (min)",
			YLabel: "Power, Weight, Water",
		},
	}
}
