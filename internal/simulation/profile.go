package simulation

// ProfilePoint is one (time, temperature) waypoint of a target curve.
// Distinct from Waypoint: these drive the setpoint the PID tracks.
type ProfilePoint struct {
	Time        float64 `json:"time_min"`
	Temperature float64 `json:"temperature"`
}

// defaultProfileSpan is the duration the built-in profile was designed for.
const defaultProfileSpan = 20.0 // minutes

// DefaultProfile returns the built-in five-point roast curve: charge, drying,
// Maillard, first crack, development. Times span 20 minutes and are scaled
// to the requested duration.
func DefaultProfile(durationMin float64) []ProfilePoint {
	scale := durationMin / defaultProfileSpan
	return []ProfilePoint{
		{Time: 0 * scale, Temperature: 20},
		{Time: 5 * scale, Temperature: 149},
		{Time: 10 * scale, Temperature: 204},
		{Time: 15 * scale, Temperature: 210},
		{Time: 20 * scale, Temperature: 227},
	}
}

// BuildTargetProfile samples the waypoint curve at steps+1 evenly spaced
// times across [0, durationMin] and returns the interpolated temperatures.
// Points must be in ascending time order. Outside the waypoint range the
// edge values hold (flat extrapolation). An empty points slice selects the
// default profile. The result is pure: same inputs, same output.
func BuildTargetProfile(points []ProfilePoint, durationMin float64, steps int) []float64 {
	if len(points) == 0 {
		points = DefaultProfile(durationMin)
	}
	if steps < 1 {
		steps = 1
	}

	out := make([]float64, steps+1)
	for i := range out {
		t := durationMin * float64(i) / float64(steps)
		out[i] = interpolate(points, t)
	}
	return out
}

// interpolate evaluates the piecewise-linear curve at time t minutes.
func interpolate(points []ProfilePoint, t float64) float64 {
	if t <= points[0].Time {
		return points[0].Temperature
	}
	last := points[len(points)-1]
	if t >= last.Time {
		return last.Temperature
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if t > b.Time {
			continue
		}
		span := b.Time - a.Time
		if span == 0 {
			return b.Temperature
		}
		frac := (t - a.Time) / span
		return a.Temperature + frac*(b.Temperature-a.Temperature)
	}
	return last.Temperature
}
