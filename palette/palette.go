// Package palette generates colors procedurally: cosine palettes, the fixed
// swatches the effects share, hyperbolic glow and exponential tonemapping.
package palette

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
)

// Cosine is the palette a + b*cos(2pi(c*t + d)).
type Cosine struct {
	A, B, C, D mgl32.Vec3
}

// Rainbow is the iridescent palette used by the ring and polygon effects.
var Rainbow = Cosine{
	A: mgl32.Vec3{0.5, 0.5, 0.5},
	B: mgl32.Vec3{0.5, 0.5, 0.5},
	C: mgl32.Vec3{1, 1, 1},
	D: mgl32.Vec3{0, 0.33, 0.67},
}

// At evaluates the palette at t.
func (p Cosine) At(t float32) mgl32.Vec3 {
	arg := p.C.Mul(t).Add(p.D).Mul(glsl.TwoPi)
	return p.A.Add(glsl.Mul3(p.B, glsl.Cos3(arg)))
}

// Shared swatches.
var (
	Lavender = mgl32.Vec3{0.83529, 0.77647, 0.87843}
	DarkBlue = mgl32.Vec3{0.09804, 0.16471, 0.31765}

	Red    = mgl32.Vec3{1, 0.349, 0.369}
	Orange = mgl32.Vec3{1, 0.792, 0.227}
	Green  = mgl32.Vec3{0.541, 0.788, 0.149}
	Blue   = mgl32.Vec3{0.098, 0.510, 0.769}
	Purple = mgl32.Vec3{0.416, 0.298, 0.576}

	// Lightsaber is 0xFF1A66FF.
	Lightsaber = mgl32.Vec4{0x1A / 255.0, 0x66 / 255.0, 1, 1}

	GlowTint = mgl32.Vec3{0.1, 0.4, 1}
	Snow     = mgl32.Vec4{0.808, 0.89, 0.918, 1}
	Night    = mgl32.Vec4{0.0784, 0.1294, 0.2392, 1}
)

// Stripes is the order in which the rainbow and flag effects lay out colors.
var Stripes = []mgl32.Vec3{Red, Orange, Green, Blue, Purple}

// Tonemap compresses unbounded intensity into [0, 1): 1 - exp(-c).
func Tonemap(c mgl32.Vec3) mgl32.Vec3 {
	e := glsl.Exp3(c.Mul(-1))
	return mgl32.Vec3{1 - e[0], 1 - e[1], 1 - e[2]}
}

// Tonemap4 applies Tonemap to all four channels.
func Tonemap4(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		1 - math32.Exp(-c[0]),
		1 - math32.Exp(-c[1]),
		1 - math32.Exp(-c[2]),
		1 - math32.Exp(-c[3]),
	}
}

// Glow is the hyperbolic falloff pow(radius/dist, intensity). The distance is
// floored at glsl.Epsilon so the centre yields a large finite value.
func Glow(dist, radius, intensity float32) float32 {
	if dist < glsl.Epsilon {
		dist = glsl.Epsilon
	}
	return math32.Pow(radius/dist, intensity)
}

// Hex parses "#RRGGBB" or "#RRGGBBAA" into a color with components in
// [0, 1]. ok is false for anything else.
func Hex(s string) (c mgl32.Vec4, ok bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return c, false
	}
	c[3] = 1
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return mgl32.Vec4{}, false
		}
		c[i] = float32(hi<<4|lo) / 255
	}
	return c, true
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// GLSL is the palette fragment.
const GLSL = `vec3 palette(float t) {
    vec3 a = vec3(0.5, 0.5, 0.5);
    vec3 b = vec3(0.5, 0.5, 0.5);
    vec3 c = vec3(1.0, 1.0, 1.0);
    vec3 d = vec3(0.00, 0.33, 0.67);
    return a + b * cos(TWO_PI * (c * t + d));
}

const vec3 LAVENDER = vec3(0.83529, 0.77647, 0.87843);
const vec3 DARK_BLUE = vec3(0.09804, 0.16471, 0.31765);
const vec3 RED = vec3(1.0, 0.349, 0.369);
const vec3 ORANGE = vec3(1.0, 0.792, 0.227);
const vec3 GREEN = vec3(0.541, 0.788, 0.149);
const vec3 BLUE = vec3(0.098, 0.510, 0.769);
const vec3 PURPLE = vec3(0.416, 0.298, 0.576);
`

// GlowGLSL is the glow and tonemap fragment.
const GlowGLSL = `float getGlow(float dist, float radius, float intensity) {
    return pow(radius / max(dist, 1e-6), intensity);
}

vec3 tonemap(vec3 c) { return 1.0 - exp(-c); }
vec4 tonemap(vec4 c) { return 1.0 - exp(-c); }
`
