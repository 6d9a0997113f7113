package simulation

// PIDController is the feedback primitive driving the engine's power output.
// Gains are fixed for the controller's lifetime; integral and previous-error
// memory persist across Update calls, so reusing one instance across runs
// carries that memory forward (callers wanting a clean loop construct a fresh
// controller or call Reset).
type PIDController struct {
	Kp float64
	Ki float64
	Kd float64

	integral  float64
	prevError float64
}

// NewPIDController returns a controller with zeroed memory.
func NewPIDController(kp, ki, kd float64) *PIDController {
	return &PIDController{Kp: kp, Ki: ki, Kd: kd}
}

// Update advances the controller by one step and returns the raw control
// output. No clamping happens here; saturation is the caller's job.
// A non-positive dt suppresses the derivative term instead of failing.
func (c *PIDController) Update(measurement, target, dt float64) float64 {
	err := target - measurement
	c.integral += err * dt

	var derivative float64
	if dt > 0 {
		derivative = (err - c.prevError) / dt
	}

	out := c.Kp*err + c.Ki*c.integral + c.Kd*derivative
	c.prevError = err
	return out
}

// Reset clears the accumulated integral and previous-error memory.
func (c *PIDController) Reset() {
	c.integral = 0
	c.prevError = 0
}
