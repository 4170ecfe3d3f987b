// Package easing provides the named [0,1] -> [0,1] curves used to warp blend
// factors and animate uniforms. Each curve carries its GLSL text so that the
// GPU program and the Go kernel evaluate the same formula.
package easing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownCurve is returned by Lookup for an unregistered name.
var ErrUnknownCurve = errors.New("unknown easing curve")

// Curve is a named easing function. GLSL defines `float ease(float t)`.
type Curve struct {
	Name string
	Fn   func(t float32) float32
	GLSL string
}

// Eval applies the curve to t.
func (c Curve) Eval(t float32) float32 {
	return c.Fn(t)
}

// Linear returns t unchanged.
func Linear(t float32) float32 {
	return t
}

// Smooth is smoothstep(0, 1, t) without the clamp: t*t*(3-2t).
func Smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

// ExponentialIn is 2^(10(t-1)), with t == 0 mapped to exactly 0.
func ExponentialIn(t float32) float32 {
	if t == 0 {
		return 0
	}
	return float32(math.Exp2(10 * (float64(t) - 1)))
}

// Bounce-out breakpoints and segment coefficients.
const (
	bounceA  = 4.0 / 11.0
	bounceB  = 8.0 / 11.0
	bounceC  = 9.0 / 10.0
	bounceCA = 4356.0 / 361.0
	bounceCB = 35442.0 / 1805.0
	bounceCC = 16061.0 / 1805.0
)

// BounceOut is four piecewise quadratics that settle at 1. The segments are
// evaluated in float64 and rounded once so both endpoints land exactly.
func BounceOut(t float32) float32 {
	x := float64(t)
	x2 := x * x
	var y float64
	switch {
	case x < bounceA:
		y = 7.5625 * x2
	case x < bounceB:
		y = 9.075*x2 - 9.9*x + 3.4
	case x < bounceC:
		y = bounceCA*x2 - bounceCB*x + bounceCC
	default:
		y = 10.8*x2 - 20.52*x + 10.72
	}
	return float32(y)
}

// BounceIn mirrors BounceOut: 1 - BounceOut(1 - t).
func BounceIn(t float32) float32 {
	return 1 - BounceOut(1-t)
}

// QuarticIn is t^4. The magnifier uses it to decay the loupe shadow.
func QuarticIn(t float32) float32 {
	return t * t * t * t
}

// SineOut is sin(pi/2 * t).
func SineOut(t float32) float32 {
	return float32(math.Sin(0.5 * math.Pi * float64(t)))
}

// Pow2 is t^2.
func Pow2(t float32) float32 {
	return t * t
}

const bounceOutGLSL = `float bounceOut(float t) {
    const float a = 4.0 / 11.0;
    const float b = 8.0 / 11.0;
    const float c = 9.0 / 10.0;
    const float ca = 4356.0 / 361.0;
    const float cb = 35442.0 / 1805.0;
    const float cc = 16061.0 / 1805.0;
    float t2 = t * t;
    return t < a
        ? 7.5625 * t2
        : t < b
            ? 9.075 * t2 - 9.9 * t + 3.4
            : t < c
                ? ca * t2 - cb * t + cc
                : 10.8 * t * t - 20.52 * t + 10.72;
}
`

var curves = map[string]Curve{
	"linear": {
		Name: "linear",
		Fn:   Linear,
		GLSL: "float ease(float t) { return t; }\n",
	},
	"smooth": {
		Name: "smooth",
		Fn:   Smooth,
		GLSL: "float ease(float t) { return t * t * (3.0 - 2.0 * t); }\n",
	},
	"exponential-in": {
		Name: "exponential-in",
		Fn:   ExponentialIn,
		GLSL: "float ease(float t) { return t == 0.0 ? t : pow(2.0, 10.0 * (t - 1.0)); }\n",
	},
	"bounce-out": {
		Name: "bounce-out",
		Fn:   BounceOut,
		GLSL: bounceOutGLSL + "float ease(float t) { return bounceOut(t); }\n",
	},
	"bounce-in": {
		Name: "bounce-in",
		Fn:   BounceIn,
		GLSL: bounceOutGLSL + "float ease(float t) { return 1.0 - bounceOut(1.0 - t); }\n",
	},
	"quartic-in": {
		Name: "quartic-in",
		Fn:   QuarticIn,
		GLSL: "float ease(float t) { return t * t * t * t; }\n",
	},
	"sine-out": {
		Name: "sine-out",
		Fn:   SineOut,
		GLSL: "float ease(float t) { return sin(1.5707963268 * t); }\n",
	},
	"pow2": {
		Name: "pow2",
		Fn:   Pow2,
		GLSL: "float ease(float t) { return t * t; }\n",
	},
}

// Lookup returns the curve registered under name.
func Lookup(name string) (Curve, error) {
	c, ok := curves[name]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return c, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Curve {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names lists the registered curves in sorted order.
func Names() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
