package crt

import "github.com/go-gl/mathgl/mgl32"

// WindowTitle is the fallback when the settings file leaves it empty.
const WindowTitle = "phosphor"

// Scanline: one dark band per device-pixel row, max darkening weight.
const (
	ScanlineWeight = 0.25
)

// Vignette: elliptical falloff toward the bezel.
const (
	VignetteAxisX = 0.7
	VignetteAxisY = 0.5
	VignetteInner = 0.6
	VignetteOuter = 1.4
	VignetteMax   = 0.75
)

// Flicker: one shared darkening value per tick, whole-frame uniform.
const (
	FlickerRate      = 30.0 // ticks per second
	FlickerAmplitude = 0.08
)

// AmberBase is the phosphor base color. The shading pass currently
// emits no additive light; the channel is reserved for glow effects.
var AmberBase = mgl32.Vec3{1.0, 0.69, 0.0}

// Bloom stack: 8 layers, sharpest/most-opaque first. Fixed for the
// process lifetime.
var bloomLayers = [8]BloomLayer{
	{Radius: 0.5, Brightness: 1.10, Opacity: 0.45},
	{Radius: 1.5, Brightness: 1.15, Opacity: 0.30},
	{Radius: 3, Brightness: 1.20, Opacity: 0.20},
	{Radius: 6, Brightness: 1.25, Opacity: 0.14},
	{Radius: 12, Brightness: 1.20, Opacity: 0.10},
	{Radius: 24, Brightness: 1.15, Opacity: 0.07},
	{Radius: 48, Brightness: 1.10, Opacity: 0.04},
	{Radius: 80, Brightness: 1.05, Opacity: 0.02},
}

// Blur kernel: 13 taps (center + 6 mirrored pairs). Tap spacing scales
// with the layer radius so the kernel always spans ±radius.
const blurTaps = 7
