// Package glrender draws a two texture cross-fade on a full surface quad,
// once per display frame.
package glrender

import (
	"image"

	"github.com/matjam/fadeshow/internal/frames"
)

// Object names returned by a Device. Zero is never a valid object.
type (
	Program uint32
	Texture uint32
	Buffer  uint32
)

// Device is the subset of OpenGL the slideshow needs. Every method is called
// from the thread that owns the context.
type Device interface {
	// NewProgram compiles and links a program, returning the info log in the
	// error on failure.
	NewProgram(vertexSrc, fragmentSrc string) (Program, error)
	UseProgram(p Program)
	UniformLocation(p Program, name string) int32
	AttribLocation(p Program, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	DeleteProgram(p Program)

	// NewTexture creates an empty 2D texture with edge clamping, linear
	// filtering and no mipmaps.
	NewTexture() Texture
	UploadTexture(t Texture, img *image.RGBA)
	BindTexture(unit int, t Texture)
	DeleteTexture(t Texture)

	// NewVertexBuffer uploads data as a static array buffer.
	NewVertexBuffer(data []float32) Buffer
	// BindVertexBuffer feeds b to attribute location with size components
	// per vertex.
	BindVertexBuffer(b Buffer, location int32, size int)
	DeleteBuffer(b Buffer)

	Viewport(width, height int)
	Clear()
	DrawTriangles(count int)
}

// Surface is the drawable the slideshow renders into.
type Surface interface {
	// ClientSize is the size the surface is laid out at, in pixels.
	ClientSize() (width, height int)
	// SetBackingSize resizes the GPU backing store.
	SetBackingSize(width, height int)
}

// FrameScheduler runs a callback once before the next repaint.
type FrameScheduler interface {
	RequestFrame(fn func()) frames.Handle
	CancelFrame(h frames.Handle)
}

// ImageSource reports which slides are decoded and hands out their pixels.
type ImageSource interface {
	Len() int
	IsReady(i int) bool
	Pixels(i int) *image.RGBA
}
