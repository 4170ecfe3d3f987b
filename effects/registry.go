package effects

import (
	"errors"
	"fmt"
	"sort"

	"github.com/richinsley/goshaderfx/easing"
)

// ErrUnknownEffect is returned by New for an unregistered name.
var ErrUnknownEffect = errors.New("unknown effect")

// Entry describes a registered effect.
type Entry struct {
	Name    string
	Summary string
	New     func() Program
}

var registry = map[string]Entry{}

func register(name, summary string, fn func() Program) {
	registry[name] = Entry{Name: name, Summary: summary, New: fn}
}

func init() {
	register("basic", "normalized coordinates as red and green", Basic)
	register("pulse", "red pulsing with abs(sin(iTime))", Pulse)
	register("gradient", "two-color mix along x with optional grain", func() Program {
		return Gradient(easing.MustLookup("linear"))
	})
	register("grainy", "lavender to dark blue, x perturbed by grain", Grainy)
	register("noisy-gradient", "per-channel smoothstep and sine blend with noise", NoisyGradient)
	register("shapes", "box outlined by a step border", Shapes)
	register("rounded-rect", "rainbow rings around a rounded rectangle", RoundedRect)
	register("rect-pulse", "animated rounded rectangle rings", RectPulse)
	register("polygon", "n-gon combined with a moving circle", Polygon)
	register("glow", "hyperbolic glow around the centre", Glow)
	register("glowing-button", "child inside a rounded rect with a glow halo", GlowingButton)
	register("glowing-button-2", "child with a normalized rounded rect glow", GlowingButton2)
	register("rainbow", "five arcs over dark blue", Rainbow)
	register("flag", "five vertical stripes", Flag)
	register("snow", "one hundred falling flakes", Snow)
	register("blizzard", "layered procedural snow over night blue", Blizzard)
	register("magnifier", "loupe with lens distortion and shadow", Magnifier)
	register("pixellate", "child quantized to square blocks", Pixellate)
	register("frosted-glass", "child behind a frosted rounded rect", FrostedGlass)
	register("chromatic", "child with red and blue split radially", Chromatic)
}

// New builds the effect registered under name.
func New(name string) (Program, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return e.New(), nil
}

// Names lists the registered effects in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries lists the registered effects sorted by name.
func Entries() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}
