package crt

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Overlay vertex shader: fullscreen quad from 0..1 vertices.
const overlayVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // 0..1 quad vertex

out vec2 vUV;

void main() {
    vUV = aPos;
    gl_Position = vec4(aPos * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

// Overlay fragment shader: scanline + vignette darkening, plus the
// frame-wide flicker value computed on the CPU. Output is
// premultiplied: rgb = additive light, a = darkness. Must stay in
// sync with ScanlineDark/VignetteDark in shade.go.
const overlayFragSrc = `#version 410 core

uniform vec2 uResolution;
uniform float uFlicker;  // shared per-tick darkening, same across the frame
uniform vec3 uAdditive;  // reserved glow channel, currently zero

in vec2 vUV;
out vec4 FragColor;

void main() {
    float row = vUV.y * uResolution.y;
    float scan = (1.0 - clamp(sin(row * 3.141592653589793), 0.0, 1.0)) * 0.25;

    vec2 p = (vUV * 2.0 - 1.0) * vec2(0.7, 0.5);
    float vig = smoothstep(0.6, 1.4, length(p)) * 0.75;

    float dark = clamp(scan + vig + uFlicker, 0.0, 1.0);
    FragColor = vec4(uAdditive, dark);
}
` + "\x00"

// Blur fragment shader: one direction of a separable Gaussian.
// uStep is the per-tap offset in texture space; weights come from
// blurWeights so the kernel matches the tested CPU version.
const blurFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform vec2 uStep;
uniform float uWeights[7];

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec3 acc = texture(uTex, vUV).rgb * uWeights[0];
    for (int i = 1; i < 7; i++) {
        vec2 off = uStep * float(i);
        acc += texture(uTex, vUV + off).rgb * uWeights[i];
        acc += texture(uTex, vUV - off).rgb * uWeights[i];
    }
    FragColor = vec4(acc, 1.0);
}
` + "\x00"

// Bloom composite fragment shader: blurred backdrop scaled by layer
// brightness and opacity. Drawn with screen blending, so the pass can
// only lighten what is behind it.
const bloomFragSrc = `#version 410 core

uniform sampler2D uTex;
uniform float uBrightness;
uniform float uOpacity;

in vec2 vUV;
out vec4 FragColor;

void main() {
    vec3 c = texture(uTex, vUV).rgb * uBrightness * uOpacity;
    FragColor = vec4(clamp(c, 0.0, 1.0), 1.0);
}
` + "\x00"

// Blit fragment shader: straight texture copy for presenting the
// backdrop page.
const blitFragSrc = `#version 410 core

uniform sampler2D uTex;

in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uTex, vUV).rgb, 1.0);
}
` + "\x00"

// Page vertex shader: pixel-space colored quads into the page FBO.
const pageVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;   // pixel coordinates
layout(location = 1) in vec4 aColor;

uniform vec2 uResolution;

out vec4 vColor;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    vColor = aColor;
}
` + "\x00"

// Page fragment shader: flat color fill.
const pageFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
