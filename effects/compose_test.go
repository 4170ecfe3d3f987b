package effects

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/inputs"
)

func TestComposeRejectsBadSlots(t *testing.T) {
	tests := []struct {
		slot string
		want error
	}{
		{"nope", inputs.ErrUndeclared},
		{"pixellate", inputs.ErrKindMismatch},
		{"resolution", inputs.ErrKindMismatch},
	}
	for _, tt := range tests {
		if _, err := Compose(Pixellate(), tt.slot, Basic()); !errors.Is(err, tt.want) {
			t.Errorf("Compose(pixellate, %q) error = %v, want %v", tt.slot, err, tt.want)
		}
	}
}

func TestComposeBindsChild(t *testing.T) {
	c, err := Compose(Pixellate(), "image", Basic())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.Name(), "pixellate(basic)"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	snap := snapshotFor(t, c, frame(64, 32, 0), map[string]inputs.Value{"pixellate": inputs.Float(1)})
	composed := c.Bind(snap)
	basic := Basic().Bind(snap)
	for _, p := range []mgl32.Vec2{{0.5, 0.5}, {31.5, 16.5}, {63.5, 31.5}} {
		if got, want := composed(p), basic(p); got != want {
			t.Errorf("composed at %v = %v, want %v", p, got, want)
		}
	}

	snap = snap.With("pixellate", inputs.Float(16))
	composed = c.Bind(snap)
	if got, want := composed(mgl32.Vec2{20.5, 5.5}), basic(mgl32.Vec2{16, 0}); got != want {
		t.Errorf("pixellated child = %v, want %v", got, want)
	}
}

func TestComposeChildResolution(t *testing.T) {
	var seen mgl32.Vec2
	probe := &effect{
		name: "probe",
		decls: []inputs.Decl{
			inputs.Slot("src"),
		},
		bind: func(u inputs.Snapshot) Kernel {
			seen = u.Channel("src").ChannelRes()
			return func(mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{} }
		},
	}
	c, err := Compose(probe, "src", Basic())
	if err != nil {
		t.Fatal(err)
	}
	c.Bind(inputs.SnapshotOf(map[string]inputs.Value{"resolution": inputs.Vec2(40, 30)}))
	if seen != (mgl32.Vec2{40, 30}) {
		t.Errorf("child resolution = %v, want (40, 30)", seen)
	}
}

func TestCompositeUniforms(t *testing.T) {
	c, _ := Compose(Chromatic(), "composable", Gradient(easing.MustLookup("smooth")))
	s, err := inputs.NewSet(c.Uniforms()...)
	if err != nil {
		t.Fatalf("NewSet(composite uniforms) error = %v", err)
	}
	for _, name := range []string{"composable", "amount", "colorA", "grain", "resolution"} {
		if _, ok := s.Decl(name); !ok {
			t.Errorf("composite set missing %q", name)
		}
	}
	src, err := FragmentSource(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src, "composable_eval") || strings.Contains(src, "colorA") {
		t.Errorf("composite source is not the parent's:\n%s", src)
	}
}

func TestCompositionsOrder(t *testing.T) {
	inner, _ := Compose(Pixellate(), "image", Basic())
	outer, _ := Compose(Chromatic(), "composable", inner)
	var names []string
	Compositions(outer, func(p Program) { names = append(names, p.Name()) })
	if got, want := strings.Join(names, ","), "basic,pixellate,chromatic"; got != want {
		t.Errorf("Compositions order = %s, want %s", got, want)
	}
	if got, want := outer.Name(), "chromatic(pixellate(basic))"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}
