package glsl

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-6
}

func TestFract(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{0, 0},
		{1.25, 0.25},
		{-0.25, 0.75},
		{3, 0},
	}
	for _, tt := range tests {
		if got := Fract(tt.x); !near(got, tt.want) {
			t.Errorf("Fract(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestMixEndpoints(t *testing.T) {
	a, b := float32(0.835), float32(0.098)
	if got := Mix(a, b, 0); got != a {
		t.Errorf("Mix(a, b, 0) = %v, want %v", got, a)
	}
	if got := Mix(a, b, 1); got != b {
		t.Errorf("Mix(a, b, 1) = %v, want %v", got, b)
	}
	if got, want := Mix(a, b, 0.5), (a+b)/2; !near(got, want) {
		t.Errorf("Mix(a, b, 0.5) = %v, want %v", got, want)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		e0, e1, x, want float32
	}{
		{0, 1, -1, 0},
		{0, 1, 0, 0},
		{0, 1, 0.5, 0.5},
		{0, 1, 1, 1},
		{0, 1, 2, 1},
		{0.5, 0.5, 0.4, 0},
		{0.5, 0.5, 0.6, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(tt.e0, tt.e1, tt.x); !near(got, tt.want) {
			t.Errorf("Smoothstep(%v, %v, %v) = %v, want %v", tt.e0, tt.e1, tt.x, got, tt.want)
		}
	}
}

func TestStep(t *testing.T) {
	if Step(0.5, 0.49) != 0 {
		t.Error("Step(0.5, 0.49) should be 0")
	}
	if Step(0.5, 0.5) != 1 {
		t.Error("Step(0.5, 0.5) should be 1")
	}
}

func TestModFollowsDivisorSign(t *testing.T) {
	tests := []struct {
		x, y, want float32
	}{
		{1.5, 1, 0.5},
		{-0.1, 0.65, 0.55},
		{0.7, 0.65, 0.05},
	}
	for _, tt := range tests {
		if got := Mod(tt.x, tt.y); math32.Abs(got-tt.want) > 1e-5 {
			t.Errorf("Mod(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(1, 2); got != 0.5 {
		t.Errorf("SafeDiv(1, 2) = %v, want 0.5", got)
	}
	for _, b := range []float32{0, 1e-9, -1e-9} {
		got := SafeDiv(1, b)
		if math32.IsInf(got, 0) || math32.IsNaN(got) {
			t.Errorf("SafeDiv(1, %v) = %v, want a finite value", b, got)
		}
	}
	if SafeDiv(1, -1e-9) > 0 {
		t.Error("SafeDiv should keep the sign of a tiny negative divisor")
	}
}

func TestSafeNormalize2(t *testing.T) {
	if got := SafeNormalize2(mgl32.Vec2{}); got != (mgl32.Vec2{}) {
		t.Errorf("SafeNormalize2(0) = %v, want zero vector", got)
	}
	got := SafeNormalize2(mgl32.Vec2{3, 4})
	if !near(got[0], 0.6) || !near(got[1], 0.8) {
		t.Errorf("SafeNormalize2(3,4) = %v, want (0.6, 0.8)", got)
	}
}

func TestVectorHelpers(t *testing.T) {
	if got := Length(Vec2(3, 4)); got != 5 {
		t.Errorf("Length(3,4) = %v, want 5", got)
	}
	if got := Distance(Vec2(1, 1), Vec2(4, 5)); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Max2(Vec2(-1, 2), 0); got != Vec2(0, 2) {
		t.Errorf("Max2 = %v, want (0, 2)", got)
	}
	if got := Abs2(Vec2(-1, 2)); got != Vec2(1, 2) {
		t.Errorf("Abs2 = %v, want (1, 2)", got)
	}
	if got := Floor2(Vec2(1.5, -0.5)); got != Vec2(1, -1) {
		t.Errorf("Floor2 = %v, want (1, -1)", got)
	}
	if got := Step2(0.1, Vec2(0.05, 0.2)); got != Vec2(0, 1) {
		t.Errorf("Step2 = %v, want (0, 1)", got)
	}
}

func TestMapRange(t *testing.T) {
	if got := MapRange(0.05, 0, 0.1, 1, 0); !near(got, 0.5) {
		t.Errorf("MapRange(0.05, 0, 0.1, 1, 0) = %v, want 0.5", got)
	}
}
