package crt

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop bootstraps the window and runs the effect until the
// window closes. The overlay stages follow the silent-abort policy: a
// stage that fails to initialize is dropped for the whole session with
// one stderr line, and everything else keeps running. Only the shell
// itself (settings, window, GL) is allowed to fail hard, since
// without it there is nothing to keep alive.
func RunDesktop(settingsPath string) {
	runtime.LockOSThread()

	cfg, err := LoadSettings(settingsPath)
	if err != nil {
		panic(err)
	}

	window, err := initWindow(cfg.Window)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	// Monitor hum is decoration on decoration: never fatal.
	if cfg.Hum.Enabled {
		if err := StartHum(cfg.Hum.Volume); err != nil {
			fmt.Fprintf(os.Stderr, "hum init failed (continuing in silence): %v\n", err)
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)

	fbW, fbH := window.GetFramebufferSize()

	page, err := NewPage(cfg.Page.Seed, cfg.Page.Lines, fbW, fbH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "page init failed (blank backdrop): %v\n", err)
		page = nil
	} else {
		defer page.Destroy()
	}

	bloom, err := NewBloom(fbW, fbH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bloom init failed (running without glow): %v\n", err)
		bloom = nil
	} else {
		defer bloom.Destroy()
	}

	surface, err := NewSurface(fbW, fbH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "overlay init failed (running without shading): %v\n", err)
		surface = nil
	} else {
		defer surface.Destroy()
	}

	// Resize runs immediately and unconditionally on the event thread,
	// so every stage sees the new dimensions before the next draw.
	resize := func(w, h int) {
		if surface != nil {
			surface.Resize(w, h)
		} else {
			gl.Viewport(0, 0, int32(w), int32(h))
		}
		if page != nil {
			if err := page.Resize(w, h); err != nil {
				fmt.Fprintf(os.Stderr, "page resize failed: %v\n", err)
			}
		}
		if bloom != nil {
			if err := bloom.Resize(w, h); err != nil {
				fmt.Fprintf(os.Stderr, "bloom resize failed: %v\n", err)
			}
		}
	}
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		resize(w, h)
	})
	resize(fbW, fbH)

	driver := NewDriver(glfw.GetTime)

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		w, h := window.GetFramebufferSize()
		if w <= 0 || h <= 0 {
			continue
		}

		elapsed := driver.Elapsed()

		gl.Clear(gl.COLOR_BUFFER_BIT)
		if page != nil {
			page.Render(elapsed)
			page.Present()
		}
		if bloom != nil && page != nil {
			bloom.Draw(page.Texture())
		}
		if surface != nil {
			surface.DrawFrame(elapsed)
		}

		window.SwapBuffers()
	}
}
