// Package graphics describes the window-system context the GL renderer draws
// into.
package graphics

import "github.com/go-gl/mathgl/mgl32"

// Context is an OpenGL context with a presentable surface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// Pointer returns the cursor in framebuffer pixels with the origin at the
	// top left, and whether the primary button is held. ok is false until the
	// cursor has entered the window.
	Pointer() (pos mgl32.Vec2, down, ok bool)
}
