package crt

import "testing"

func TestAppendPageQuadsDeterministic(t *testing.T) {
	a := appendPageQuads(nil, 1977, 22, 1024, 768, 0)
	b := appendPageQuads(nil, 1977, 22, 1024, 768, 0)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vertex data differs at %d: %v vs %v", i, a[i], b[i])
		}
	}

	c := appendPageQuads(nil, 1978, 22, 1024, 768, 0)
	same := len(a) == len(c)
	if same {
		for i := range a {
			if a[i] != c[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical page content")
	}
}

func TestAppendPageQuadsWithinBounds(t *testing.T) {
	const w, h = 1024.0, 768.0
	buf := appendPageQuads(nil, 1977, 22, w, h, 0)
	if len(buf)%6 != 0 {
		t.Fatalf("buffer length %d not a multiple of the vertex stride", len(buf))
	}
	for i := 0; i < len(buf); i += 6 {
		x, y := float64(buf[i]), float64(buf[i+1])
		if x < 0 || x > w || y < 0 || y > h {
			t.Fatalf("vertex %d at (%v, %v) outside %vx%v", i/6, x, y, w, h)
		}
	}
}

func TestAppendPageQuadsCursorBlink(t *testing.T) {
	on := appendPageQuads(nil, 1977, 22, 1024, 768, 0)    // blink phase on
	off := appendPageQuads(nil, 1977, 22, 1024, 768, 0.6) // blink phase off
	if len(on) != len(off)+36 {
		t.Errorf("cursor quad not toggling: on=%d off=%d vertices", len(on)/6, len(off)/6)
	}
}
