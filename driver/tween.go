package driver

import (
	"fmt"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/inputs"
)

// Tween animates one float uniform between its default and its press value.
// While the pointer is down progress runs toward one over the duration; on
// release it runs back. The curve shapes the value, not the progress, so a
// release mid-way reverses smoothly from where it was.
type Tween struct {
	name     string
	from, to float32
	duration float64
	curve    easing.Curve
	progress float64
}

// NewTween builds the tween of a declaration carrying a Press.
func NewTween(d inputs.Decl) (*Tween, error) {
	if d.Press == nil {
		return nil, fmt.Errorf("uniform %q has no press animation", d.Name)
	}
	if d.Kind != inputs.KindFloat {
		return nil, fmt.Errorf("%w: press on %s uniform %q", inputs.ErrKindMismatch, d.Kind, d.Name)
	}
	curveName := d.Press.Curve
	if curveName == "" {
		curveName = "linear"
	}
	curve, err := easing.Lookup(curveName)
	if err != nil {
		return nil, fmt.Errorf("uniform %q: %w", d.Name, err)
	}
	return &Tween{
		name:     d.Name,
		from:     d.Default.Float(),
		to:       d.Press.Value,
		duration: d.Press.Duration.Seconds(),
		curve:    curve,
	}, nil
}

// Name is the uniform the tween drives.
func (t *Tween) Name() string { return t.name }

// Progress is how far toward the press value the tween is, in [0, 1].
func (t *Tween) Progress() float64 { return t.progress }

// Step advances the tween by dt seconds toward pressed or released and
// returns the new value.
func (t *Tween) Step(dt float64, down bool) float32 {
	delta := 1.0
	if t.duration > 0 {
		delta = max(dt, 0) / t.duration
	}
	if down {
		t.progress = min(t.progress+delta, 1)
	} else {
		t.progress = max(t.progress-delta, 0)
	}
	return t.Value()
}

// Value is the current value of the uniform.
func (t *Tween) Value() float32 {
	switch t.progress {
	case 0:
		return t.from
	case 1:
		return t.to
	}
	e := t.curve.Eval(float32(t.progress))
	return t.from + (t.to-t.from)*e
}
