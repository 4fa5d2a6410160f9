package crt

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// This file is the CPU mirror of the overlay fragment shader in
// shaders.go. Both must compute the same values; the Go side exists so
// the shading math can be verified without a GL context.

// ScanlineDark returns the scanline darkening for a normalized
// vertical coordinate v in [0,1] on a surface heightPx device pixels
// tall. Mapping v to a fractional row index and clamping the negative
// half of sin(row*pi) to zero produces hard dark bands rather than a
// smooth gradient. A non-positive height yields zero darkening (no
// rows means no gaps between rows).
func ScanlineDark(v, heightPx float64) float64 {
	if heightPx <= 0 {
		return 0
	}
	row := v * heightPx
	s := math.Sin(row * math.Pi)
	return (1 - clampF(s, 0, 1)) * ScanlineWeight
}

// VignetteDark returns the elliptical edge darkening for normalized
// coordinates (u,v). The center darkens by zero; corners beyond the
// outer threshold receive the full VignetteMax.
func VignetteDark(u, v float64) float64 {
	x := (u*2 - 1) * VignetteAxisX
	y := (v*2 - 1) * VignetteAxisY
	d := math.Hypot(x, y)
	return smoothstep(VignetteInner, VignetteOuter, d) * VignetteMax
}

// FlickerTick quantizes elapsed seconds to the flicker tick index.
func FlickerTick(elapsed float64) uint32 {
	return uint32(int64(math.Floor(elapsed * FlickerRate)))
}

// FlickerDark returns the frame-wide flicker darkening for the given
// elapsed time. The value is constant within each 1/30 s tick and
// jumps at tick boundaries; hash formula is lowbias32, so the output
// is bit-exact reproducible. Range is [-0.04, 0.04).
func FlickerDark(elapsed float64) float64 {
	h := float64(lowbias32(FlickerTick(elapsed))) / float64(1<<32)
	return (h - 0.5) * FlickerAmplitude
}

// Shade computes the full per-pixel shading result: additive light
// (currently always zero, channel reserved) and total darkness in
// [0,1]. Pure in (u, v, elapsed, res) modulo the tick quantization
// inside FlickerDark.
func Shade(u, v, elapsed float64, res mgl32.Vec2) (additive mgl32.Vec3, darkness float64) {
	dark := ScanlineDark(v, float64(res.Y())) + VignetteDark(u, v) + FlickerDark(elapsed)
	return mgl32.Vec3{}, clampF(dark, 0, 1)
}
