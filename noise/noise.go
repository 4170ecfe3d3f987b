// Package noise holds the sine-fract hashes the effects use for grain, chaos
// and particle seeding. None of them is a true noise function: each maps a
// coordinate to a pseudo-random scalar in [0, 1] and is fully deterministic.
package noise

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
)

// Hash constants shared with the GLSL fragment.
var (
	RandomKey = mgl32.Vec2{12.9898, 78.233}
	GrainKey  = mgl32.Vec2{1.9898, 78.233}
)

const (
	RandomScale float32 = 43758.5453123
	RndScale    float32 = 43758.5453
)

// Hash2 is fract(sin(dot(st, k)) * scale).
func Hash2(st, k mgl32.Vec2, scale float32) float32 {
	return glsl.Fract(math32.Sin(st.Dot(k)) * scale)
}

// Random is the classic 2D hash used by the gradient and glass effects.
func Random(st mgl32.Vec2) float32 {
	return Hash2(st, RandomKey, RandomScale)
}

// Grain is the variant with a shortened x key that the grainy gradient uses.
// It bands visibly along x, which is the look that effect wants.
func Grain(st mgl32.Vec2) float32 {
	return Hash2(st, GrainKey, RandomScale)
}

// Rnd hashes a scalar by spreading it over two axes first. The snow field
// seeds particle speed and horizontal position from it. x == -2.3 divides by
// zero; callers only pass particle indices and their cosines.
func Rnd(x float32) float32 {
	st := mgl32.Vec2{x + 47.49, 38.2467 / (x + 2.3)}
	return Hash2(st, RandomKey, RndScale)
}

// GLSL defines random, grain and rnd with the same constants as the Go code.
const GLSL = `float random(vec2 st) {
    return fract(sin(dot(st.xy, vec2(12.9898, 78.233))) * 43758.5453123);
}

float grainRandom(vec2 st) {
    return fract(sin(dot(st.xy, vec2(1.9898, 78.233))) * 43758.5453123);
}

float rnd(float x) {
    return fract(sin(dot(vec2(x + 47.49, 38.2467 / (x + 2.3)), vec2(12.9898, 78.233))) * 43758.5453);
}
`
