// Package sdf provides 2D signed distance functions and the helpers that turn
// a distance into coverage. Distances are negative inside a shape, zero on its
// boundary and positive outside.
package sdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
)

// MinPolygonSides is the fewest sides Polygon will build.
const MinPolygonSides = 3

// Circle is the distance from p to a circle of radius r centred at c.
func Circle(p, c mgl32.Vec2, r float32) float32 {
	return glsl.Distance(p, c) - r
}

// RoundedRect is the distance from p to a rectangle of half extents box,
// centred at the origin, whose corners are rounded by r.
func RoundedRect(p, box mgl32.Vec2, r float32) float32 {
	q := glsl.Abs2(p).Sub(box).Add(glsl.Splat2(r))
	return math32.Min(math32.Max(q[0], q[1]), 0) + glsl.Length(glsl.Max2(q, 0)) - r
}

// CornerField is the rounded-corner distance used by the ring effects:
// length(max(|p| - offset, 0)). It is zero over the inner rectangle.
func CornerField(p mgl32.Vec2, offset float32) float32 {
	return glsl.Length(glsl.Max2(glsl.Abs2(p).Sub(glsl.Splat2(offset)), 0))
}

// Polygon is the angle-quantized distance of a regular n-gon of the given
// size centred at the origin. n below three is raised to three and the
// angle at the origin is taken as zero.
func Polygon(p mgl32.Vec2, n int, size float32) float32 {
	if n < MinPolygonSides {
		n = MinPolygonSides
	}
	var a float32
	if p[0] != 0 || p[1] != 0 {
		a = math32.Atan2(p[0], p[1]) + glsl.Pi
	}
	r := glsl.TwoPi / float32(n)
	return math32.Cos(math32.Floor(0.5+a/r)*r-a)*glsl.Length(p) - size
}

// Box is a step-threshold mask: one inside
// the square inset by margin on every side of the unit square, zero outside.
func Box(uv mgl32.Vec2, margin float32) float32 {
	bl := glsl.Step2(margin, uv)
	tr := glsl.Step2(margin, mgl32.Vec2{1 - uv[0], 1 - uv[1]})
	return bl[0] * bl[1] * tr[0] * tr[1]
}

// Union keeps points in either shape.
func Union(a, b float32) float32 {
	return math32.Min(a, b)
}

// Intersect keeps points in both shapes.
func Intersect(a, b float32) float32 {
	return math32.Max(a, b)
}

// Subtract removes b from a.
func Subtract(a, b float32) float32 {
	return math32.Max(a, -b)
}

// Fill is the hard coverage of distance d: one inside or on the edge.
func Fill(d float32) float32 {
	return 1 - glsl.Step(glsl.Epsilon, d)
}

// SmoothFill is coverage with an antialiased edge of the given width.
func SmoothFill(d, width float32) float32 {
	return 1 - glsl.Smoothstep(-width, width, d)
}

// Stroke is coverage of a band of the given width centred on the boundary.
func Stroke(d, width float32) float32 {
	return 1 - glsl.Smoothstep(0, width, math32.Abs(d))
}

// GLSL mirrors the Go functions for the GPU path.
const GLSL = `float sdCircle(vec2 p, vec2 c, float r) {
    return length(p - c) - r;
}

float roundRect(vec2 position, vec2 box, float radius) {
    vec2 q = abs(position) - box + radius;
    return min(max(q.x, q.y), 0.0) + length(max(q, 0.0)) - radius;
}

float cornerField(vec2 p, float offset) {
    return length(max(abs(p) - offset, 0.0));
}

float sdPolygon(vec2 p, int n, float size) {
    n = max(n, 3);
    float a = (p.x == 0.0 && p.y == 0.0) ? 0.0 : atan(p.x, p.y) + PI;
    float r = TWO_PI / float(n);
    return cos(floor(0.5 + a / r) * r - a) * length(p) - size;
}

float boxMask(vec2 uv, float margin) {
    vec2 bl = step(vec2(margin), uv);
    vec2 tr = step(vec2(margin), 1.0 - uv);
    return bl.x * bl.y * tr.x * tr.y;
}

float opUnion(float a, float b) { return min(a, b); }
float opIntersect(float a, float b) { return max(a, b); }
float opSubtract(float a, float b) { return max(a, -b); }

float fill(float d) { return 1.0 - step(1e-6, d); }
float smoothFill(float d, float w) { return 1.0 - smoothstep(-w, w, d); }
float stroke(float d, float w) { return 1.0 - smoothstep(0.0, w, abs(d)); }
`
