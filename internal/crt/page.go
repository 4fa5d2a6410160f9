package crt

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Page is the demo backdrop: a procedurally greeked amber terminal
// screen rendered into an offscreen texture each frame. It stands in
// for the host content the overlay and the bloom stack composite
// over; the effect itself never depends on what the page shows.
type Page struct {
	prog        uint32
	uResolution int32
	vao, vbo    uint32

	blitProg uint32
	uBlitTex int32
	quadVAO  uint32
	quadVBO  uint32

	fbo, tex uint32
	view     viewport

	seed  uint64
	lines int
	buf   []float32
}

// Vertex layout for page quads: pos(2) + color(4).
const pageStride = 6 * 4

// NewPage builds the page programs and its backing texture.
func NewPage(seed uint64, lines, w, h int) (*Page, error) {
	prog, err := linkProgram(pageVertSrc, pageFragSrc)
	if err != nil {
		return nil, fmt.Errorf("page program: %w", err)
	}
	blitProg, err := linkProgram(overlayVertSrc, blitFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("blit program: %w", err)
	}

	p := &Page{prog: prog, blitProg: blitProg, seed: seed, lines: lines}

	gl.UseProgram(prog)
	p.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.UseProgram(blitProg)
	p.uBlitTex = gl.GetUniformLocation(blitProg, gl.Str("uTex\x00"))
	gl.Uniform1i(p.uBlitTex, 0)

	// Streaming VBO for colored quads.
	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4096*pageStride, nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, pageStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, pageStride, glOffset(2*4))
	gl.BindVertexArray(0)

	p.quadVAO, p.quadVBO = newFullscreenQuad()

	if err := p.Resize(w, h); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// Resize reallocates the page texture to the framebuffer size.
func (p *Page) Resize(w, h int) error {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
		gl.DeleteTextures(1, &p.tex)
		p.fbo, p.tex = 0, 0
	}
	p.view.set(w, h)
	if w <= 0 || h <= 0 {
		return nil
	}
	fbo, tex, err := newColorFBO(w, h)
	if err != nil {
		return fmt.Errorf("page target: %w", err)
	}
	p.fbo, p.tex = fbo, tex
	return nil
}

// Texture returns the rendered page texture.
func (p *Page) Texture() uint32 { return p.tex }

// Render draws the greeked page content into the backing texture.
func (p *Page) Render(elapsed float64) {
	if p.fbo == 0 {
		return
	}
	w, h := float64(p.view.W), float64(p.view.H)

	gl.BindFramebuffer(gl.FRAMEBUFFER, p.fbo)
	gl.ClearColor(0.05, 0.035, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.buf = appendPageQuads(p.buf[:0], p.seed, p.lines, w, h, elapsed)

	gl.UseProgram(p.prog)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.Uniform2f(p.uResolution, float32(w), float32(h))
	gl.BufferData(gl.ARRAY_BUFFER, len(p.buf)*4, gl.Ptr(p.buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(p.buf)/6))
	gl.BindVertexArray(0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Present blits the page texture to the default framebuffer.
func (p *Page) Present() {
	if p.tex == 0 {
		return
	}
	gl.UseProgram(p.blitProg)
	gl.BindVertexArray(p.quadVAO)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// appendQuad appends one solid quad (two triangles) in pixel coords.
func appendQuad(buf []float32, x, y, w, h float64, r, g, b, a float32) []float32 {
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	return append(buf,
		x0, y0, r, g, b, a,
		x1, y0, r, g, b, a,
		x1, y1, r, g, b, a,
		x0, y0, r, g, b, a,
		x1, y1, r, g, b, a,
		x0, y1, r, g, b, a,
	)
}

// appendPageQuads builds the greeked terminal content: a header line,
// a rule, body lines of word-shaped bars, and a blinking cursor.
// Fully deterministic given (seed, lines, w, h) apart from the cursor
// blink phase.
func appendPageQuads(buf []float32, seed uint64, lines int, w, h, elapsed float64) []float32 {
	marginX := w * 0.08
	marginY := h * 0.07
	lineH := (h - 2*marginY) / float64(lines+2)
	barH := lineH * 0.55
	amber := AmberBase

	// Header: one long bright bar plus a thin rule under it.
	buf = appendQuad(buf, marginX, marginY, (w-2*marginX)*0.62, barH,
		amber.X()*0.95, amber.Y()*0.95, amber.Z(), 1)
	buf = appendQuad(buf, marginX, marginY+lineH*1.1, w-2*marginX, barH*0.12,
		amber.X()*0.5, amber.Y()*0.5, amber.Z(), 1)

	cursorY := marginY + 2.2*lineH
	for line := 0; line < lines; line++ {
		y := marginY + float64(line+2)*lineH + lineH*0.2
		cursorY = y
		words := 3 + int(hash2D(seed, line, 0)%5)
		bright := float32(0.55 + 0.35*float64(hash2D(seed, line, 1)%1000)/1000.0)
		x := marginX
		for k := 1; k <= words; k++ {
			wordW := w * (0.03 + 0.09*float64(hash2D(seed, line, k)%1000)/1000.0)
			if x+wordW > w-marginX {
				break
			}
			buf = appendQuad(buf, x, y, wordW, barH,
				amber.X()*bright, amber.Y()*bright, amber.Z(), 1)
			x += wordW + w*0.015
		}
	}

	// Block cursor on the line after the last one, phosphor-style blink.
	if math.Mod(elapsed, 1.06) < 0.53 {
		buf = appendQuad(buf, marginX, cursorY+lineH, barH*0.7, barH,
			amber.X(), amber.Y(), amber.Z(), 1)
	}
	return buf
}

// Destroy releases all GL objects owned by the page.
func (p *Page) Destroy() {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
	}
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
	}
	for _, id := range []uint32{p.vbo, p.quadVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{p.vao, p.quadVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{p.prog, p.blitProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}
