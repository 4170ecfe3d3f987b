package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/inputs"
)

func pressDecl(curve string, d time.Duration) inputs.Decl {
	decl := inputs.FloatParam("glow", 0, 0, 1)
	decl.Press = &inputs.Press{Value: 1, Duration: d, Curve: curve}
	return decl
}

func TestNewTweenErrors(t *testing.T) {
	if _, err := NewTween(inputs.FloatParam("x", 0, 0, 1)); err == nil {
		t.Errorf("NewTween without press succeeded")
	}
	bad := pressDecl("wobble", time.Second)
	if _, err := NewTween(bad); !errors.Is(err, easing.ErrUnknownCurve) {
		t.Errorf("NewTween(unknown curve) error = %v, want ErrUnknownCurve", err)
	}
	vec := inputs.Vec2Param("v", [2]float32{})
	vec.Press = &inputs.Press{Value: 1, Duration: time.Second}
	if _, err := NewTween(vec); !errors.Is(err, inputs.ErrKindMismatch) {
		t.Errorf("NewTween(vec2) error = %v, want ErrKindMismatch", err)
	}
}

func TestTweenLinear(t *testing.T) {
	tw, err := NewTween(pressDecl("", time.Second))
	if err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		dt   float64
		down bool
		want float32
	}{
		{0.5, false, 0},
		{0.25, true, 0.25},
		{0.25, true, 0.5},
		{1, true, 1},
		{0.25, false, 0.75},
		{5, false, 0},
	}
	for i, s := range steps {
		if got := tw.Step(s.dt, s.down); got != s.want {
			t.Errorf("step %d: Step(%v, %v) = %v, want %v", i, s.dt, s.down, got, s.want)
		}
	}
}

func TestTweenCurveAndInstant(t *testing.T) {
	tw, _ := NewTween(pressDecl("smooth", 2*time.Second))
	got := tw.Step(0.5, true)
	if want := easing.Smooth(0.25); got != want {
		t.Errorf("smooth tween at 0.25 = %v, want %v", got, want)
	}

	instant, _ := NewTween(pressDecl("linear", 0))
	if got := instant.Step(0, true); got != 1 {
		t.Errorf("zero-duration press = %v, want 1", got)
	}
	if got := instant.Step(0, false); got != 0 {
		t.Errorf("zero-duration release = %v, want 0", got)
	}
}
