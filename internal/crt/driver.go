package crt

// Driver advances the effect clock. Elapsed time is always measured
// from the original start timestamp, never accumulated per frame, so
// the clock cannot drift under variable frame rates.
type Driver struct {
	now   func() float64
	start float64
}

// NewDriver captures the start timestamp from now, a monotonic clock
// returning seconds.
func NewDriver(now func() float64) *Driver {
	return &Driver{now: now, start: now()}
}

// Elapsed returns seconds since the driver was created.
func (d *Driver) Elapsed() float64 {
	return d.now() - d.start
}
