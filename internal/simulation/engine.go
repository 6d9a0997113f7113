package simulation

import "math"

// Point is one sample of a tracked series: elapsed minutes on X, value on Y.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Model constants. The temperature rails are numerical guard rails against
// blow-up, not physical limits; every clamp bound here is part of the model.
const (
	nsteps = 500

	maxTemperature = 1000.0 // °C
	minTemperature = -50.0  // °C
	maxPower       = 100.0  // %
	minPower       = 0.0    // %

	rorCorrection    = 0.5
	evapEnergy       = 750.0 // energy equivalent per kg of moisture driven off
	residualMoisture = 0.01  // moisture floor as a fraction of dry mass
	postCrackMassDiv = 600.0
	postCrackJFactor = 50.0

	stefanBoltzmann = 5.6703e-8
	equilibriumLag  = 100.0 // steps for the lagged oven-equilibrium relaxation
	ovenOffset      = 40.0

	maxROR       = 50.0
	maxRadiative = 1e12

	gravity = 9.8
)

// series holds the eight tracked quantities plus the actual oven temperature,
// each with an initial x=0 sample and one sample per step.
type series struct {
	Target         []Point
	OvenEquivalent []Point
	Oven           []Point
	Measured       []Point
	Bean           []Point
	Power          []Point
	Mass           []Point
	Moisture       []Point
	ROR            []Point
}

// runState is the engine's scalar state after the loop completes.
type runState struct {
	finalMeasured float64
	deliveredMJ   float64
	radiative     float64
	turnAt        float64 // minutes, 0 = never latched
	dryingAt      float64
	firstCrackAt  float64
	beanArea      float64
	froude        float64
	waypoints     []Waypoint
}

// Run validates the parameters, integrates the full roast, and assembles the
// result. The profile is a (time, temperature) curve in ascending time order;
// nil selects the built-in default. The loop never fails once started: every
// hazardous division and overflow is guarded so it runs to completion.
func Run(p Parameters, pid *PIDController, profile []ProfilePoint) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	target := BuildTargetProfile(profile, p.Duration, nsteps)
	ser, st := integrate(p, pid, target)
	return assemble(p, ser, st), nil
}

// integrate runs the fixed-step loop: nsteps iterations after the initial
// x=0 sample of every series, one PID update per iteration.
func integrate(p Parameters, pid *PIDController, target []float64) (*series, *runState) {
	kg := p.BatchGrams / 1000 // g to kg

	// A drum speed past the midpoint folds back: 4 behaves like 2.
	speed := p.DrumSpeed
	if speed > 3 {
		speed = 6 - speed
	}

	moistureRate := 0.0012 * kg / 10
	resp := 10 + (3-p.Response)*3

	dryMass := kg * (1 - p.Moisture)
	moisture := p.Moisture * dryMass

	oven := p.ChargeTemp
	ovenEq := oven
	lagged := 0.0
	bean := p.BeanTemp
	measured := oven
	prevMeasured := 999.0

	mjNow := p.RatedMJ
	mjTotal := 0.0
	radiative := 0.0

	tstep := p.Duration / nsteps
	tnow := 0.0

	var turnAt, dryingAt, firstCrackAt float64
	pastCrack := false

	// Drum geometry and radiative coupling.
	drumD := p.DrumDiameter / 1000 // mm to m
	drumL := p.DrumLength / 1000
	drumArea := math.Pi * drumD * drumL
	beanArea := 2 * math.Pi * math.Sqrt(safeDiv(2*kg/1000, math.Pi*drumL)) * drumL
	froude := math.Pow(p.DrumRPM/60*2*math.Pi, 2) * drumD / (2 * gravity)

	waypoints := ParseSchedule(p.PowerSchedule)
	p0 := InitialPower(waypoints, p.InitialPower)

	ser := &series{
		Target:         seed(target[0], nsteps),
		OvenEquivalent: seed(p.AirTemp, nsteps),
		Oven:           seed(oven, nsteps),
		Measured:       seed(measured, nsteps),
		Bean:           seed(bean, nsteps),
		Power:          seed(p0, nsteps),
		Mass:           seed(100, nsteps),
		Moisture:       seed(100*safeDiv(moisture, dryMass), nsteps),
		ROR:            seed(0, nsteps),
	}

	for step := 1; step <= nsteps; step++ {
		tnow += tstep

		setpoint := target[step]
		ser.Target = append(ser.Target, Point{tnow, setpoint})

		power := clamp(pid.Update(bean, setpoint, tstep), minPower, maxPower)
		ser.Power = append(ser.Power, Point{tnow, power})

		// Oven-equivalent temperature implied by the current power output,
		// relative to the configured initial power.
		ovenEq = p.AirTemp * (1 - (1-safeDiv(power, p.InitialPower))*0.2)
		ovenEq = clamp(ovenEq, minTemperature, maxTemperature)

		if lagged == 0 {
			lagged = ovenEq
		}

		// Relax the actual oven temperature toward its implied target.
		oven += safeDiv(bean-(oven-ovenOffset+(p.AirTemp-ovenEq)), resp*5)
		oven = clamp(oven, minTemperature, maxTemperature)

		ser.OvenEquivalent = append(ser.OvenEquivalent, Point{tnow, ovenEq})
		ser.Oven = append(ser.Oven, Point{tnow, oven})

		// Delivered energy relaxes toward the power-scaled rate.
		mjEq := p.RatedMJ * power / 100
		mjNow += safeDiv(mjEq-mjNow, resp)
		mjTotal += mjNow

		// Evaporative loss is proportional to degrees above boiling.
		loss := math.Max(0, (bean-100)*moistureRate*tstep)

		// One-shot event latches: first crossing only, never reset.
		if bean >= p.FirstCrackTemp {
			if firstCrackAt == 0 {
				firstCrackAt = tnow
			}
			pastCrack = true
		}
		if bean >= p.DryingTemp && dryingAt == 0 {
			dryingAt = tnow
		}

		// Moisture-loss policy: decay toward the 1% residual once past first
		// crack; before it, never dip below the residual.
		var evapMJ float64
		if pastCrack {
			loss = (moisture - residualMoisture*dryMass) / 10
			moisture = math.Max(moisture-loss, 0)
			evapMJ = evapEnergy * loss
		} else if moisture > 0 && loss > 0 {
			loss = math.Min(loss, moisture-residualMoisture*dryMass)
			moisture -= loss
			evapMJ = evapEnergy * loss
		}

		ser.Moisture = append(ser.Moisture, Point{tnow, 100 * safeDiv(moisture, dryMass)})

		// Past first crack the dry mass itself shrinks and releases energy
		// quadratic in degrees above the crack threshold.
		var crackMJ float64
		if p.PostCrackLoss > 0 && pastCrack {
			shrink := dryMass * p.PostCrackLoss / postCrackMassDiv
			dryMass = math.Max(dryMass-shrink, 0)
			crackMJ = math.Pow(bean+1-p.FirstCrackTemp, 2) * shrink * postCrackJFactor
		}

		total := dryMass + moisture
		ser.Mass = append(ser.Mass, Point{tnow, 100 * safeDiv(total, kg)})

		// Net heat-transfer delta for the bean mass. A zero total mass
		// contributes nothing rather than dividing by it.
		var delta float64
		if total != 0 {
			delta = (lagged - bean) * (mjNow - evapMJ + crackMJ) / total *
				(0.019 + (speed-3)*0.0005) * tstep
			delta = clamp(delta, -maxTemperature, maxTemperature)
		}

		lagged += (ovenEq - lagged) / equilibriumLag
		bean = clamp(bean+delta, minTemperature, maxTemperature)

		// The probe lags the true bean temperature; a non-finite reading
		// resets to the true value instead of propagating.
		dMeasured := safeDiv(bean-measured, resp)
		measured += dMeasured
		if !isFinite(measured) {
			measured = bean
		}

		ser.Measured = append(ser.Measured, Point{tnow, measured})
		ser.Bean = append(ser.Bean, Point{tnow, bean})

		if measured > prevMeasured && turnAt == 0 {
			turnAt = tnow
		}
		prevMeasured = measured

		ror := clamp(safeDiv(dMeasured, tstep)*rorCorrection, -maxROR, maxROR)
		ser.ROR = append(ser.ROR, Point{tnow, ror})

		// Fourth-power radiative exchange; a non-finite step contributes zero.
		if rl := stefanBoltzmann * (math.Pow(lagged+273, 4) - math.Pow(bean+273, 4)); isFinite(rl) {
			radiative += rl
		}
		radiative = clamp(radiative, -maxRadiative, maxRadiative)
	}

	// Scale the radiative accumulator by the drum/bean view factor and the
	// step duration in seconds, and the delivered energy by the step length.
	radiative *= beanArea / (1/p.BeanEmissivity + (beanArea/drumArea)*(1/p.DrumEmissivity-1)) * tstep * 60
	mjTotal *= p.Duration / 60 / nsteps

	return ser, &runState{
		finalMeasured: measured,
		deliveredMJ:   mjTotal,
		radiative:     radiative,
		turnAt:        turnAt,
		dryingAt:      dryingAt,
		firstCrackAt:  firstCrackAt,
		beanArea:      beanArea,
		froude:        froude,
		waypoints:     waypoints,
	}
}

func seed(y float64, capacity int) []Point {
	s := make([]Point, 1, capacity+1)
	s[0] = Point{0, y}
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// safeDiv substitutes zero for a division by zero instead of letting the
// non-finite result ripple through the state.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
