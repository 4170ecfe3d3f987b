package shader

import (
	"github.com/richinsley/goshaderfx/noise"
	"github.com/richinsley/goshaderfx/palette"
	"github.com/richinsley/goshaderfx/sdf"
)

// Library fragment names.
const (
	Util    = "util"
	Easing  = "easing"
	Palette = "palette"
	Glow    = "glow"
	SDF     = "sdf"
	Lens    = "lens"
)

const utilGLSL = `const float PI = 3.1415926536;
const float TWO_PI = 6.28318530718;

float plot(vec2 st, float pct) {
    return smoothstep(pct - 0.01, pct, st.y) - smoothstep(pct, pct + 0.01, st.y);
}

float mapRange(float value, float inMin, float inMax, float outMin, float outMax) {
    return (value - inMin) * (outMax - outMin) / (inMax - inMin) + outMin;
}

vec2 safeNormalize(vec2 v) {
    float l = length(v);
    return l < 1e-6 ? vec2(0.0) : v / l;
}

`

const easingGLSL = `float easeInQuart(float x) { return x * x * x * x; }
float easeSineOut(float x) { return sin(0.5 * PI * x); }
float easePow2(float x) { return x * x; }
float easeExpoIn(float x) { return x == 0.0 ? x : pow(2.0, 10.0 * (x - 1.0)); }
`

const lensGLSL = `vec2 lens_distortion(vec2 r, float alpha) {
    return r * (1.0 - alpha * dot(r, r));
}

vec2 zoom_point(vec2 uv, vec2 point, float zoom) {
    return (uv - point) / zoom + point;
}
`

type fragment struct {
	requires []string
	code     string
}

// Fragments are emitted in this order, after their requirements.
var fragmentOrder = []string{Util, Easing, Palette, Glow, SDF, Lens}

var fragments = map[string]fragment{
	Util:    {code: utilGLSL + noise.GLSL},
	Easing:  {requires: []string{Util}, code: easingGLSL},
	Palette: {requires: []string{Util}, code: palette.GLSL},
	Glow:    {code: palette.GlowGLSL},
	SDF:     {requires: []string{Util}, code: sdf.GLSL},
	Lens:    {requires: []string{Util, Easing}, code: lensGLSL},
}

// Fragment returns the GLSL text of a library fragment.
func Fragment(name string) (string, bool) {
	f, ok := fragments[name]
	return f.code, ok
}
