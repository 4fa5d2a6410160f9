package crt

import (
	"math"
	"testing"
)

func TestBloomLayersContract(t *testing.T) {
	layers := BloomLayers()
	wantRadius := []float64{0.5, 1.5, 3, 6, 12, 24, 48, 80}
	wantBright := []float64{1.1, 1.15, 1.2, 1.25, 1.2, 1.15, 1.1, 1.05}
	wantOpacity := []float64{0.45, 0.3, 0.2, 0.14, 0.1, 0.07, 0.04, 0.02}

	if len(layers) != 8 {
		t.Fatalf("layer count = %d, want 8", len(layers))
	}
	for i, l := range layers {
		if l.Radius != wantRadius[i] || l.Brightness != wantBright[i] || l.Opacity != wantOpacity[i] {
			t.Errorf("layer %d = %+v, want {%v %v %v}",
				i, l, wantRadius[i], wantBright[i], wantOpacity[i])
		}
	}
}

func TestBloomLayersOrdering(t *testing.T) {
	layers := BloomLayers()
	for i := 1; i < len(layers); i++ {
		if layers[i].Radius <= layers[i-1].Radius {
			t.Errorf("radius not increasing at %d: %v <= %v", i, layers[i].Radius, layers[i-1].Radius)
		}
		if layers[i].Opacity >= layers[i-1].Opacity {
			t.Errorf("opacity not decreasing at %d: %v >= %v", i, layers[i].Opacity, layers[i-1].Opacity)
		}
	}
}

func TestBloomLayersImmutable(t *testing.T) {
	got := BloomLayers()
	got[0].Radius = 999
	if BloomLayers()[0].Radius != 0.5 {
		t.Error("mutating the returned array leaked into the stack configuration")
	}
}

func TestBlurWeights(t *testing.T) {
	w := blurWeights()

	sum := w[0]
	for i := 1; i < blurTaps; i++ {
		sum += 2 * w[i]
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("kernel sum = %v, want 1", sum)
	}

	for i := 1; i < blurTaps; i++ {
		if w[i] >= w[i-1] {
			t.Errorf("weight %d = %v not below weight %d = %v", i, w[i], i-1, w[i-1])
		}
		if w[i] <= 0 {
			t.Errorf("weight %d = %v, want positive", i, w[i])
		}
	}
}
