// Package effects is the shader library. Every effect is a Program: a set of
// uniform declarations, the GLSL text the GPU path compiles and a Bind method
// that resolves the uniforms of one frame into a per-pixel Kernel for the CPU
// path. Programs hold no mutable state and may be shared across goroutines.
package effects

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/shader"
)

// Kernel computes the premultiplied RGBA color of the pixel at fragCoord.
// Coordinates are pixels with the origin at the top left; pixel centres sit
// at half-integer coordinates.
type Kernel func(fragCoord mgl32.Vec2) mgl32.Vec4

// Program is one effect.
type Program interface {
	// Name is the registry key of the effect.
	Name() string
	// Uniforms declares every uniform the program reads, with its default.
	Uniforms() []inputs.Decl
	// Source is the GLSL text of the program.
	Source() shader.Source
	// Bind resolves u once and returns the kernel for the frame.
	Bind(u inputs.Snapshot) Kernel
}

type effect struct {
	name   string
	decls  []inputs.Decl
	source shader.Source
	bind   func(u inputs.Snapshot) Kernel
}

func (e *effect) Name() string { return e.name }

func (e *effect) Uniforms() []inputs.Decl {
	out := make([]inputs.Decl, len(e.decls))
	copy(out, e.decls)
	return out
}

func (e *effect) Source() shader.Source { return e.source }

func (e *effect) Bind(u inputs.Snapshot) Kernel { return e.bind(u) }

// FragmentSource composes the complete GLSL ES program for p. A composite
// yields the program of its outermost parent; children compile on their own.
func FragmentSource(p Program) (string, error) {
	for {
		c, ok := p.(*Composite)
		if !ok {
			break
		}
		p = c.parent
	}
	return shader.GetFragmentShader(p.Uniforms(), p.Source())
}

// surface returns a resolution safe to divide by. A surface that has not been
// sized yet reads as one pixel.
func surface(res mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{max(res[0], 1), max(res[1], 1)}
}

// normalize maps a pixel coordinate to [0, 1] over res.
func normalize(coord, res mgl32.Vec2) mgl32.Vec2 {
	r := surface(res)
	return mgl32.Vec2{coord[0] / r[0], coord[1] / r[1]}
}

func gray(v float32) mgl32.Vec3 {
	return mgl32.Vec3{v, v, v}
}
