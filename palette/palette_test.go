package palette

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func near3(a, b mgl32.Vec3) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > 1e-4 {
			return false
		}
	}
	return true
}

func TestRainbowAt(t *testing.T) {
	tests := []struct {
		t    float32
		want mgl32.Vec3
	}{
		// cos(0) = 1 on red, d shifts green and blue
		{0, mgl32.Vec3{1, 0.5 + 0.5*math32.Cos(2*math32.Pi*0.33), 0.5 + 0.5*math32.Cos(2*math32.Pi*0.67)}},
		{0.5, mgl32.Vec3{0, 0.5 + 0.5*math32.Cos(2*math32.Pi*0.83), 0.5 + 0.5*math32.Cos(2*math32.Pi*1.17)}},
	}
	for _, tt := range tests {
		if got := Rainbow.At(tt.t); !near3(got, tt.want) {
			t.Errorf("Rainbow.At(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestRainbowPeriodic(t *testing.T) {
	for _, x := range []float32{0.1, 0.37, 0.8} {
		if a, b := Rainbow.At(x), Rainbow.At(x+1); !near3(a, b) {
			t.Errorf("Rainbow.At(%v) = %v, At(%v) = %v", x, a, x+1, b)
		}
	}
}

func TestTonemap(t *testing.T) {
	got := Tonemap(mgl32.Vec3{0, 1, 100})
	want := mgl32.Vec3{0, 1 - math32.Exp(-1), 1}
	if !near3(got, want) {
		t.Errorf("Tonemap = %v, want %v", got, want)
	}
}

func TestGlow(t *testing.T) {
	if got := Glow(0.4, 0.2, 1); math32.Abs(got-0.5) > 1e-6 {
		t.Errorf("Glow(0.4, 0.2, 1) = %v, want 0.5", got)
	}
	if got := Glow(0, 0.2, 1); math32.IsInf(got, 0) || math32.IsNaN(got) {
		t.Errorf("Glow at zero distance = %v, want finite", got)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want mgl32.Vec4
		ok   bool
	}{
		{"#1A66FF", Lightsaber, true},
		{"ff000080", mgl32.Vec4{1, 0, 0, 128.0 / 255}, true},
		{"#12345", mgl32.Vec4{}, false},
		{"#GG0000", mgl32.Vec4{}, false},
	}
	for _, tt := range tests {
		got, ok := Hex(tt.in)
		if ok != tt.ok || got.Sub(tt.want).Len() > 1e-6 {
			t.Errorf("Hex(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
