package preset

import (
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

func TestFromJSON(t *testing.T) {
	p, err := FromJSON([]byte(`{
		"effect": "gradient",
		"curve": "bounce-out",
		"width": 64, "height": 32,
		"uniforms": {
			"grain": 0.25,
			"colorA": "#FF0000",
			"colorB": [0, 0, 1],
			"center": [0.5, 0.75],
			"tint": [1, 1, 1, 0.5]
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Effect != "gradient" || p.Width != 64 || p.Height != 32 || p.Curve != "bounce-out" {
		t.Errorf("FromJSON() = %+v", p)
	}
	tests := []struct {
		name string
		want inputs.Value
	}{
		{"grain", inputs.Float(0.25)},
		{"colorA", inputs.Color(mgl32.Vec4{1, 0, 0, 1})},
		{"colorB", inputs.Color(mgl32.Vec4{0, 0, 1, 1})},
		{"center", inputs.Vec2(0.5, 0.75)},
		{"tint", inputs.Color(mgl32.Vec4{1, 1, 1, 0.5})},
	}
	for _, tt := range tests {
		if got := p.Uniforms[tt.name].Value(); got != tt.want {
			t.Errorf("uniform %s = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestFromJSONErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{`{}`, ErrNoEffect},
		{`{"effect": "basic", "uniforms": {"x": "blue"}}`, ErrBadUniform},
		{`{"effect": "basic", "uniforms": {"x": [1, 2, 3, 4, 5]}}`, ErrBadUniform},
		{`{"effect": "basic", "uniforms": {"x": [1, "2"]}}`, ErrBadUniform},
		{`{"effect": "basic", "uniforms": {"x": true}}`, ErrBadUniform},
		{`{"effect": "basic", "uniforms": {"x": []}}`, ErrBadUniform},
	}
	for _, tt := range tests {
		if _, err := FromJSON([]byte(tt.in)); !errors.Is(err, tt.want) {
			t.Errorf("FromJSON(%s) error = %v, want %v", tt.in, err, tt.want)
		}
	}
	if _, err := FromJSON([]byte(`{"effect":`)); err == nil {
		t.Errorf("FromJSON(truncated) succeeded")
	}
	if _, err := FromJSON([]byte(`{"effect": "basic", "width": -1}`)); err == nil {
		t.Errorf("FromJSON(negative width) succeeded")
	}
}

func TestUniformMarshal(t *testing.T) {
	p := &Preset{Effect: "basic"}
	p.Set("a", Uniform{v: inputs.Float(2)})
	p.Set("b", Uniform{v: inputs.Vec2(1, 2)})
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Uniforms["a"].Value() != inputs.Float(2) || back.Uniforms["b"].Value() != inputs.Vec2(1, 2) {
		t.Errorf("reloaded %s as %+v", data, back.Uniforms)
	}
	if _, err := json.Marshal(Uniform{v: inputs.ChannelValue(nil)}); err == nil {
		t.Errorf("marshalled a channel uniform")
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		in   string
		name string
		want inputs.Value
	}{
		{"pixellate=12", "pixellate", inputs.Float(12)},
		{" amount = 2.5 ", "amount", inputs.Float(2.5)},
		{"loupeCenter=0.5,0.25", "loupeCenter", inputs.Vec2(0.5, 0.25)},
		{"glowColor=#1A66FF", "glowColor", inputs.Color(mgl32.Vec4{0x1A / 255.0, 0x66 / 255.0, 1, 1})},
		{"glowColor=ff000080", "glowColor", inputs.Color(mgl32.Vec4{1, 0, 0, 0x80 / 255.0})},
		{"tint=1,0.5,0", "tint", inputs.Color(mgl32.Vec4{1, 0.5, 0, 1})},
	}
	for _, tt := range tests {
		name, u, err := ParseAssignment(tt.in)
		if err != nil {
			t.Errorf("ParseAssignment(%q) error = %v", tt.in, err)
			continue
		}
		if name != tt.name || u.Value() != tt.want {
			t.Errorf("ParseAssignment(%q) = %s, %+v, want %s, %+v", tt.in, name, u.Value(), tt.name, tt.want)
		}
	}
	for _, bad := range []string{"pixellate", "=1", "x=", "x=1,y", "x=zz", "x=1,2,3,4,5"} {
		if _, _, err := ParseAssignment(bad); !errors.Is(err, ErrBadUniform) {
			t.Errorf("ParseAssignment(%q) error = %v, want ErrBadUniform", bad, err)
		}
	}
}

func TestProgram(t *testing.T) {
	p := &Preset{Effect: "chromatic", Child: "pixellate"}
	prog, err := p.Program()
	if err != nil {
		t.Fatal(err)
	}
	if prog.Name() != "chromatic(pixellate)" {
		t.Errorf("Program().Name() = %q", prog.Name())
	}
	if c := prog.(*effects.Composite); c.Slot() != "composable" {
		t.Errorf("child slot = %q, want composable", c.Slot())
	}

	if _, err := (&Preset{Effect: "basic", Child: "flag"}).Program(); !errors.Is(err, ErrNoSlot) {
		t.Errorf("child of basic error = %v, want ErrNoSlot", err)
	}
	if _, err := (&Preset{Effect: "pixellate", Child: "flag", Slot: "pixellate"}).Program(); !errors.Is(err, inputs.ErrKindMismatch) {
		t.Errorf("child into a float error = %v, want ErrKindMismatch", err)
	}
	if _, err := (&Preset{Effect: "sepia"}).Program(); !errors.Is(err, effects.ErrUnknownEffect) {
		t.Errorf("unknown effect error = %v, want ErrUnknownEffect", err)
	}
	if _, err := (&Preset{Effect: "gradient", Curve: "wobble"}).Program(); !errors.Is(err, easing.ErrUnknownCurve) {
		t.Errorf("unknown curve error = %v, want ErrUnknownCurve", err)
	}
}

func TestImageSlot(t *testing.T) {
	inner, _ := effects.Compose(effects.Pixellate(), "image", effects.Basic())
	nested, _ := effects.Compose(effects.Chromatic(), "composable", effects.Pixellate())
	tests := []struct {
		prog effects.Program
		want string
	}{
		{effects.Basic(), ""},
		{effects.Magnifier(), "image"},
		{effects.GlowingButton(), "button"},
		{inner, ""},
		{nested, "image"},
	}
	for _, tt := range tests {
		if got := ImageSlot(tt.prog); got != tt.want {
			t.Errorf("ImageSlot(%s) = %q, want %q", tt.prog.Name(), got, tt.want)
		}
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestFromFileAndApply(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "photo.png"))
	path := filepath.Join(dir, "fx.json")
	err := os.WriteFile(path, []byte(`{
		"effect": "pixellate",
		"image": "photo.png",
		"uniforms": {"pixellate": 80}
	}`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	p, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "photo.png"); p.Image != want {
		t.Errorf("Image = %q, want %q", p.Image, want)
	}
	prog, _ := p.Program()
	set, err := inputs.NewSet(prog.Uniforms()...)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Apply(prog, set, 8, 8); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	snap := set.Snapshot()
	if got := snap.Float("pixellate"); got != 50 {
		t.Errorf("pixellate = %v, want clamped 50", got)
	}
	ch := snap.Channel("image")
	if got := ch.ChannelRes(); got != (mgl32.Vec2{8, 8}) {
		t.Errorf("image resolution = %v, want fitted (8, 8)", got)
	}

	if _, err := FromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("FromFile(missing) succeeded")
	}
}

func TestApplyErrors(t *testing.T) {
	prog := effects.Basic()
	set, _ := inputs.NewSet(prog.Uniforms()...)
	p := &Preset{Effect: "basic"}
	p.Set("resolution", Uniform{v: inputs.Float(1)})
	if err := p.Apply(prog, set, 4, 4); !errors.Is(err, inputs.ErrKindMismatch) {
		t.Errorf("Apply(float into vec2) = %v, want ErrKindMismatch", err)
	}

	p = &Preset{Effect: "basic", Image: "photo.png"}
	if err := p.Apply(prog, set, 4, 4); !errors.Is(err, ErrNoSlot) {
		t.Errorf("Apply(image without slot) = %v, want ErrNoSlot", err)
	}
}
