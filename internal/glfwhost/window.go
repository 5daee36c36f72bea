// Package glfwhost hosts the slideshow in a GLFW window: it owns the GL
// context, reports the surface size and pumps frame callbacks once per swap.
package glfwhost

import (
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/matjam/fadeshow/internal/frames"
)

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Framerate caps the frame rate when VSync is off.
	Framerate int
}

// Window is a GLFW window with a current OpenGL 2.1 context. All methods
// must be called from the thread that created it.
type Window struct {
	frames.Queue

	win       *glfw.Window
	vsync     bool
	framerate int

	backingWidth  int
	backingHeight int
}

// New initialises GLFW and opens the window. It locks the calling goroutine
// to its OS thread, as GLFW and the GL context require.
func New(cfg Config) (*Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		vidMode := monitor.GetVideoMode()
		width, height = vidMode.Width, vidMode.Height
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window failed: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init failed: %w", err)
	}
	log.Debugf("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	framerate := cfg.Framerate
	if framerate <= 0 {
		framerate = 60
	} else if framerate > 240 {
		framerate = 240
	}

	gl.ClearColor(0.0, 0.0, 0.0, 0.0)

	w := &Window{
		win:       win,
		vsync:     cfg.VSync,
		framerate: framerate,
	}
	w.backingWidth, w.backingHeight = win.GetFramebufferSize()
	return w, nil
}

// ClientSize returns the framebuffer size in pixels, which follows the window
// as it is resized.
func (w *Window) ClientSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// SetBackingSize records the size the renderer synced to. GLFW resizes the
// default framebuffer together with the window, so there is nothing to
// reallocate here.
func (w *Window) SetBackingSize(width, height int) {
	w.backingWidth, w.backingHeight = width, height
}

// BackingSize is the size last passed to SetBackingSize.
func (w *Window) BackingSize() (int, int) {
	return w.backingWidth, w.backingHeight
}

// Frame runs the pending frame callbacks, presents the result and processes
// window events. It returns false once the window has been asked to close.
func (w *Window) Frame() bool {
	if w.RunPending() == 0 {
		// nothing scheduled, keep the surface empty
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	w.win.SwapBuffers()
	glfw.PollEvents()
	if !w.vsync {
		time.Sleep(time.Second / time.Duration(w.framerate))
	}
	return !w.win.ShouldClose()
}

// Close destroys the window and shuts GLFW down.
func (w *Window) Close() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
