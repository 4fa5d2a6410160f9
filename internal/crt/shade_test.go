package crt

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestScanlineDark(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		height float64
		want   float64
	}{
		{"band center row 0.5", 0.5 / 1000, 1000, 0},
		{"band center row 2.5", 2.5 / 1000, 1000, 0},
		{"band boundary row 1", 1.0 / 1000, 1000, 0.25},
		{"dark half row 1.5", 1.5 / 1000, 1000, 0.25},
		{"top edge", 0, 1000, 0.25},
		{"zero height", 0.5, 0, 0},
		{"negative height", 0.5, -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanlineDark(tt.v, tt.height)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScanlineDark(%v, %v) = %v, want %v", tt.v, tt.height, got, tt.want)
			}
		})
	}
}

func TestVignetteDark(t *testing.T) {
	tests := []struct {
		name string
		u, v float64
		want float64
	}{
		{"center", 0.5, 0.5, 0},
		{"inside inner threshold", 0.9, 0.5, 0}, // scaled distance 0.56 < 0.6
		{"beyond outer threshold", 2.0, 0.5, 0.75},
		{"far below", 0.5, -2.0, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VignetteDark(tt.u, tt.v)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VignetteDark(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestVignetteDarkIncreasesTowardCorner(t *testing.T) {
	prev := -1.0
	for i := 0; i <= 10; i++ {
		u := 0.5 - float64(i)*0.05 // walk from center to left edge
		d := VignetteDark(u, 0.5)
		if d < prev-1e-12 {
			t.Fatalf("vignette not monotonic at u=%v: %v < %v", u, d, prev)
		}
		prev = d
	}
	if corner := VignetteDark(0, 0); corner <= 0 {
		t.Errorf("corner vignette = %v, want > 0", corner)
	}
}

func TestFlickerDarkConstantWithinTick(t *testing.T) {
	const tick = 1.0 / 30
	times := []float64{0, 0.001, tick - 1e-6}
	base := FlickerDark(times[0])
	for _, ts := range times[1:] {
		if got := FlickerDark(ts); got != base {
			t.Errorf("FlickerDark(%v) = %v, want %v (same tick)", ts, got, base)
		}
	}
	if FlickerDark(0) == FlickerDark(tick+1e-6) &&
		FlickerDark(tick+1e-6) == FlickerDark(2*tick+1e-6) {
		t.Error("flicker identical across three consecutive ticks")
	}
}

func TestFlickerDarkMagnitude(t *testing.T) {
	for i := 0; i < 10000; i++ {
		elapsed := float64(i) / 30
		f := FlickerDark(elapsed)
		if f < -0.04 || f >= 0.04 {
			t.Fatalf("FlickerDark(%v) = %v outside [-0.04, 0.04)", elapsed, f)
		}
	}
}

func TestShadeClamped(t *testing.T) {
	res := mgl32.Vec2{1920, 1080}
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, v := range []float64{0, 0.1, 0.5, 0.9, 1} {
			for _, elapsed := range []float64{0, 0.7, 13.37, 3600} {
				add, dark := Shade(u, v, elapsed, res)
				if dark < 0 || dark > 1 {
					t.Fatalf("Shade(%v, %v, %v) darkness = %v outside [0,1]", u, v, elapsed, dark)
				}
				if add != (mgl32.Vec3{}) {
					t.Fatalf("Shade additive = %v, want zero (reserved channel)", add)
				}
			}
		}
	}
}

// Whole-pipeline check at t=0, 1000x1000, screen center: vignette 0,
// scanline on a band boundary (row 500), tick-0 flicker is exactly
// -0.04 since lowbias32(0) == 0.
func TestShadeCenterAtStart(t *testing.T) {
	_, dark := Shade(0.5, 0.5, 0, mgl32.Vec2{1000, 1000})
	want := 0.25 + 0 - 0.04
	if math.Abs(dark-want) > 1e-9 {
		t.Errorf("Shade center at t=0 = %v, want %v", dark, want)
	}
}
