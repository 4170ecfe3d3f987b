// Package glsl implements the GLSL built-in functions the effect kernels use,
// over float32 scalars and mgl32 vectors, so that a kernel written in Go reads
// like its shading-language counterpart and rounds like it.
package glsl

import "github.com/chewxy/math32"

// Epsilon is the smallest magnitude accepted as a divisor by SafeDiv and as a
// vector length by SafeNormalize2.
const Epsilon float32 = 1e-6

const (
	Pi    float32 = 3.1415926536
	TwoPi float32 = 6.28318530718
)

// Fract returns the fractional part of x, x - floor(x).
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

// Mix linearly interpolates between a and b: a*(1-t) + b*t.
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Step returns 0 when x < edge and 1 otherwise.
func Step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// Clamp constrains x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Saturate clamps x to [0, 1].
func Saturate(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Smoothstep performs Hermite interpolation between 0 and 1 as x moves from e0
// to e1. Equal edges degrade to Step instead of dividing by zero.
func Smoothstep(e0, e1, x float32) float32 {
	if e0 == e1 {
		return Step(e0, x)
	}
	t := Saturate((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// Mod is the GLSL modulo, x - y*floor(x/y). Unlike math32.Mod the result takes
// the sign of y.
func Mod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

// SafeDiv divides a by b, replacing a b smaller than Epsilon in magnitude with
// Epsilon of the same sign.
func SafeDiv(a, b float32) float32 {
	if math32.Abs(b) < Epsilon {
		if b < 0 {
			return a / -Epsilon
		}
		return a / Epsilon
	}
	return a / b
}

// MapRange maps value from [inMin, inMax] onto [outMin, outMax] without clamping.
func MapRange(value, inMin, inMax, outMin, outMax float32) float32 {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}
