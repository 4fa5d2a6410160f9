package crt

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BloomLayer describes one phosphor-glow pass: blur radius in device
// pixels, brightness multiplier, and composite opacity.
type BloomLayer struct {
	Radius     float64
	Brightness float64
	Opacity    float64
}

// BloomLayers returns the fixed glow stack, sharpest first. The
// backing array is never mutated after startup.
func BloomLayers() [8]BloomLayer {
	return bloomLayers
}

// blurWeights builds the normalized half-kernel for the separable
// Gaussian blur: weights[0] is the center tap, weights[i] applies to
// the mirrored taps at ±i steps. Taps sit at i*radius/6, with sigma
// radius/2, so the normalized weights are the same for every layer.
func blurWeights() [blurTaps]float64 {
	var w [blurTaps]float64
	sum := 0.0
	for i := 0; i < blurTaps; i++ {
		x := float64(i) / 3.0 // (i*radius/6) / (radius/2)
		w[i] = math.Exp(-x * x / 2)
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// newColorFBO creates an RGBA8 texture-backed framebuffer.
func newColorFBO(w, h int) (fbo, tex uint32, err error) {
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		gl.DeleteTextures(1, &tex)
		return 0, 0, fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return fbo, tex, nil
}

// Bloom renders the fixed glow stack: for each layer the backdrop
// texture is blurred in two separable passes, then composited over
// the framebuffer with screen blending (lighten-only, so stacking
// order against the shading surface cannot conflict). Configuration
// is fixed at startup; per frame only the passes re-run.
type Bloom struct {
	blurProg  uint32
	uBlurTex  int32
	uStep     int32
	uWeights  int32
	compProg  uint32
	uCompTex  int32
	uBright   int32
	uOpacity  int32
	vao, vbo  uint32
	pingFBO   [2]uint32
	pingTex   [2]uint32
	weights   [blurTaps]float32
	view      viewport
}

// NewBloom builds the blur/composite programs and ping-pong targets.
// Returns an error when the environment lacks what the stack needs;
// callers then run without bloom rather than failing the host.
func NewBloom(w, h int) (*Bloom, error) {
	blurProg, err := linkProgram(overlayVertSrc, blurFragSrc)
	if err != nil {
		return nil, fmt.Errorf("blur program: %w", err)
	}
	compProg, err := linkProgram(overlayVertSrc, bloomFragSrc)
	if err != nil {
		gl.DeleteProgram(blurProg)
		return nil, fmt.Errorf("bloom program: %w", err)
	}

	b := &Bloom{blurProg: blurProg, compProg: compProg}
	b.vao, b.vbo = newFullscreenQuad()

	gl.UseProgram(blurProg)
	b.uBlurTex = gl.GetUniformLocation(blurProg, gl.Str("uTex\x00"))
	b.uStep = gl.GetUniformLocation(blurProg, gl.Str("uStep\x00"))
	b.uWeights = gl.GetUniformLocation(blurProg, gl.Str("uWeights\x00"))
	gl.Uniform1i(b.uBlurTex, 0)

	fw := blurWeights()
	for i, v := range fw {
		b.weights[i] = float32(v)
	}
	gl.Uniform1fv(b.uWeights, blurTaps, &b.weights[0])

	gl.UseProgram(compProg)
	b.uCompTex = gl.GetUniformLocation(compProg, gl.Str("uTex\x00"))
	b.uBright = gl.GetUniformLocation(compProg, gl.Str("uBrightness\x00"))
	b.uOpacity = gl.GetUniformLocation(compProg, gl.Str("uOpacity\x00"))
	gl.Uniform1i(b.uCompTex, 0)

	if err := b.Resize(w, h); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// Resize reallocates the ping-pong targets to the new framebuffer
// size. Must complete before the next frame draws; the GL thread
// ordering guarantees that.
func (b *Bloom) Resize(w, h int) error {
	b.releaseTargets()
	b.view.set(w, h)
	if w <= 0 || h <= 0 {
		return nil
	}
	for i := 0; i < 2; i++ {
		fbo, tex, err := newColorFBO(w, h)
		if err != nil {
			b.releaseTargets()
			return fmt.Errorf("bloom target %d: %w", i, err)
		}
		b.pingFBO[i] = fbo
		b.pingTex[i] = tex
	}
	return nil
}

// Draw runs all 8 layers against the backdrop texture. The default
// framebuffer must be bound with the backdrop already presented.
func (b *Bloom) Draw(backdrop uint32) {
	if b.view.W <= 0 || b.view.H <= 0 || b.pingFBO[0] == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, layer := range bloomLayers {
		// Tap spacing in texture space so 6 taps span the layer radius.
		sx := float32(layer.Radius / 6.0 / float64(b.view.W))
		sy := float32(layer.Radius / 6.0 / float64(b.view.H))

		gl.UseProgram(b.blurProg)

		// Horizontal pass: backdrop -> ping 0.
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.pingFBO[0])
		gl.BindTexture(gl.TEXTURE_2D, backdrop)
		gl.Uniform2f(b.uStep, sx, 0)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)

		// Vertical pass: ping 0 -> ping 1.
		gl.BindFramebuffer(gl.FRAMEBUFFER, b.pingFBO[1])
		gl.BindTexture(gl.TEXTURE_2D, b.pingTex[0])
		gl.Uniform2f(b.uStep, 0, sy)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)

		// Composite onto the page with screen blending.
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.UseProgram(b.compProg)
		gl.BindTexture(gl.TEXTURE_2D, b.pingTex[1])
		gl.Uniform1f(b.uBright, float32(layer.Brightness))
		gl.Uniform1f(b.uOpacity, float32(layer.Opacity))
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE_MINUS_DST_COLOR, gl.ONE)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
		gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(0)
}

func (b *Bloom) releaseTargets() {
	for i := 0; i < 2; i++ {
		if b.pingFBO[i] != 0 {
			gl.DeleteFramebuffers(1, &b.pingFBO[i])
			b.pingFBO[i] = 0
		}
		if b.pingTex[i] != 0 {
			gl.DeleteTextures(1, &b.pingTex[i])
			b.pingTex[i] = 0
		}
	}
}

// Destroy releases all GL objects owned by the stack.
func (b *Bloom) Destroy() {
	b.releaseTargets()
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.blurProg != 0 {
		gl.DeleteProgram(b.blurProg)
	}
	if b.compProg != 0 {
		gl.DeleteProgram(b.compProg)
	}
}
