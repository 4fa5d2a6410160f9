package crt

import (
	"math"
	"testing"
)

func TestDriverElapsed(t *testing.T) {
	now := 100.0
	d := NewDriver(func() float64 { return now })

	if got := d.Elapsed(); got != 0 {
		t.Errorf("initial elapsed = %v, want 0", got)
	}

	now = 100.25
	if got := d.Elapsed(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("elapsed = %v, want 0.25", got)
	}
}

// Elapsed must derive from the original start timestamp, not from
// summed per-frame deltas, so irregular frame pacing cannot drift it.
func TestDriverNoDrift(t *testing.T) {
	now := 5.0
	d := NewDriver(func() float64 { return now })

	// Thousands of wildly uneven frames.
	for i := 1; i <= 5000; i++ {
		step := 0.001
		if i%7 == 0 {
			step = 0.3 // stall
		}
		now += step
		d.Elapsed()
	}

	want := now - 5.0
	if got := d.Elapsed(); math.Abs(got-want) > 1e-9 {
		t.Errorf("elapsed = %v, want %v after uneven frames", got, want)
	}
}
