package crt

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// viewport tracks surface dimensions in device pixels. Written only
// by the resize handler and read by the frame draw; both run on the
// GL thread, so no synchronization is needed.
type viewport struct {
	W, H int
}

func (v *viewport) set(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	v.W, v.H = w, h
}

// newFullscreenQuad uploads a 0..1 unit quad (6 vertices, 2 triangles)
// and returns its VAO/VBO.
func newFullscreenQuad() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	gl.BindVertexArray(0)
	return vao, vbo
}

// Surface owns the shading overlay: the fullscreen quad, the overlay
// program, and the current viewport. One instance per process.
type Surface struct {
	prog uint32
	vao  uint32
	vbo  uint32

	uResolution int32
	uFlicker    int32
	uAdditive   int32

	view viewport
}

// NewSurface compiles the overlay program and uploads the quad. On
// failure the caller is expected to drop the overlay entirely: the
// effect is decorative and must never take the host down with it.
func NewSurface(w, h int) (*Surface, error) {
	prog, err := linkProgram(overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, fmt.Errorf("overlay program: %w", err)
	}

	s := &Surface{prog: prog}
	s.vao, s.vbo = newFullscreenQuad()

	gl.UseProgram(prog)
	s.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	s.uFlicker = gl.GetUniformLocation(prog, gl.Str("uFlicker\x00"))
	s.uAdditive = gl.GetUniformLocation(prog, gl.Str("uAdditive\x00"))
	// Reserved glow channel stays dark.
	gl.Uniform3f(s.uAdditive, 0, 0, 0)

	s.view.set(w, h)
	return s, nil
}

// Resize updates the tracked dimensions and the GL viewport. Runs
// unconditionally on every framebuffer-size event; the next DrawFrame
// on the same thread sees the new dimensions.
func (s *Surface) Resize(w, h int) {
	s.view.set(w, h)
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Viewport returns the current surface dimensions in device pixels.
func (s *Surface) Viewport() (w, h int) {
	return s.view.W, s.view.H
}

// DrawFrame renders the shading pass over whatever is already in the
// framebuffer. The flicker term is evaluated once per frame on the
// CPU (it is constant across the frame anyway) and handed to the
// shader as a uniform; scanline and vignette run per pixel.
func (s *Surface) DrawFrame(elapsed float64) {
	gl.UseProgram(s.prog)
	gl.BindVertexArray(s.vao)

	gl.Uniform2f(s.uResolution, float32(s.view.W), float32(s.view.H))
	gl.Uniform1f(s.uFlicker, float32(FlickerDark(elapsed)))

	gl.Enable(gl.BLEND)
	configureBlend()
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.Disable(gl.BLEND)

	gl.BindVertexArray(0)
}

// configureBlend sets the overlay compositing mode: source RGB adds
// at full weight while destination RGB is attenuated by source alpha.
// With the shader's premultiplied output this realizes "light adds,
// darkness subtracts" in a single pass. Any other factor pair breaks
// the premultiplication assumption and visibly over- or under-darkens.
func configureBlend() {
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
}

// Destroy releases GL objects owned by the surface.
func (s *Surface) Destroy() {
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.prog != 0 {
		gl.DeleteProgram(s.prog)
	}
}
