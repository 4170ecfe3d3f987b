package glsl

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec2, Vec3 and Vec4 build vectors without composite literals at call sites.
func Vec2(x, y float32) mgl32.Vec2       { return mgl32.Vec2{x, y} }
func Vec3(x, y, z float32) mgl32.Vec3    { return mgl32.Vec3{x, y, z} }
func Vec4(x, y, z, w float32) mgl32.Vec4 { return mgl32.Vec4{x, y, z, w} }

// Splat2 and Splat3 replicate a scalar into every component.
func Splat2(s float32) mgl32.Vec2 { return mgl32.Vec2{s, s} }
func Splat3(s float32) mgl32.Vec3 { return mgl32.Vec3{s, s, s} }

// Length returns the Euclidean length of v.
func Length(v mgl32.Vec2) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Distance returns the length of a - b.
func Distance(a, b mgl32.Vec2) float32 {
	return Length(a.Sub(b))
}

// Abs2 is the component-wise absolute value.
func Abs2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{math32.Abs(v[0]), math32.Abs(v[1])}
}

// Max2 is the component-wise max(v, s).
func Max2(v mgl32.Vec2, s float32) mgl32.Vec2 {
	return mgl32.Vec2{math32.Max(v[0], s), math32.Max(v[1], s)}
}

// Floor2 is the component-wise floor.
func Floor2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{math32.Floor(v[0]), math32.Floor(v[1])}
}

// Ceil2 is the component-wise ceil.
func Ceil2(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{math32.Ceil(v[0]), math32.Ceil(v[1])}
}

// Step2 is the component-wise step(edge, v).
func Step2(edge float32, v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{Step(edge, v[0]), Step(edge, v[1])}
}

// Div2 divides a by b component-wise.
func Div2(a, b mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{a[0] / b[0], a[1] / b[1]}
}

// Mul2 multiplies a and b component-wise.
func Mul2(a, b mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{a[0] * b[0], a[1] * b[1]}
}

// Mul3 multiplies a and b component-wise.
func Mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Mix3 interpolates every component of a and b by the same t.
func Mix3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t)}
}

// Mix3V interpolates a and b with a per-component factor.
func Mix3V(a, b, t mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Mix(a[0], b[0], t[0]), Mix(a[1], b[1], t[1]), Mix(a[2], b[2], t[2])}
}

// Mix4 interpolates every component of a and b by the same t.
func Mix4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return mgl32.Vec4{Mix(a[0], b[0], t), Mix(a[1], b[1], t), Mix(a[2], b[2], t), Mix(a[3], b[3], t)}
}

// Fract3 is the component-wise fractional part.
func Fract3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{Fract(v[0]), Fract(v[1]), Fract(v[2])}
}

// Exp3 is the component-wise natural exponent.
func Exp3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Exp(v[0]), math32.Exp(v[1]), math32.Exp(v[2])}
}

// Cos3 is the component-wise cosine.
func Cos3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(v[0]), math32.Cos(v[1]), math32.Cos(v[2])}
}

// SafeNormalize2 returns v scaled to unit length, or the zero vector when v is
// shorter than Epsilon. GLSL's normalize is undefined at the origin.
func SafeNormalize2(v mgl32.Vec2) mgl32.Vec2 {
	l := Length(v)
	if l < Epsilon {
		return mgl32.Vec2{}
	}
	return v.Mul(1 / l)
}

// RGB drops the alpha channel of c.
func RGB(c mgl32.Vec4) mgl32.Vec3 {
	return mgl32.Vec3{c[0], c[1], c[2]}
}

// Opaque extends c with an alpha of 1.
func Opaque(c mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{c[0], c[1], c[2], 1}
}
