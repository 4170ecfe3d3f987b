// Package preset loads effect configurations from JSON: which effect to
// run, at what size, with which parameter values, image and child effect.
//
//	{
//	  "effect": "chromatic",
//	  "child": "pixellate",
//	  "image": "photo.jpg",
//	  "width": 800, "height": 600,
//	  "uniforms": {"amount": 6, "pixellate": 12, "glowColor": "#1A66FF"}
//	}
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

var (
	// ErrNoEffect is returned for a preset that names no effect.
	ErrNoEffect = errors.New("preset names no effect")
	// ErrNoSlot is returned when an image or child has no channel to feed.
	ErrNoSlot = errors.New("no free channel slot")
)

// Preset is one effect configuration.
type Preset struct {
	Effect string `json:"effect"`
	// Curve is the easing curve of the gradient effect.
	Curve  string `json:"curve,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	// Child is an effect rendered into Slot, the effect's first channel
	// slot when empty.
	Child string `json:"child,omitempty"`
	Slot  string `json:"slot,omitempty"`
	// Image is loaded into the first channel slot nothing else feeds.
	Image    string             `json:"image,omitempty"`
	Sampler  *inputs.Sampler    `json:"sampler,omitempty"`
	Uniforms map[string]Uniform `json:"uniforms,omitempty"`
}

// FromJSON parses a preset.
func FromJSON(data []byte) (*Preset, error) {
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode preset JSON: %w", err)
	}
	if p.Effect == "" {
		return nil, ErrNoEffect
	}
	if p.Width < 0 || p.Height < 0 {
		return nil, fmt.Errorf("invalid preset size %dx%d", p.Width, p.Height)
	}
	return &p, nil
}

// FromFile reads a preset. A relative image path is taken relative to the
// preset file.
func FromFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}
	p, err := FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Image != "" && !filepath.IsAbs(p.Image) {
		p.Image = filepath.Join(filepath.Dir(path), p.Image)
	}
	goshaderfx.Logger().Info("loaded preset", "path", path, "effect", p.Effect)
	return p, nil
}

// Program builds the preset's effect, composed with its child if it has
// one.
func (p *Preset) Program() (effects.Program, error) {
	parent, err := p.newEffect(p.Effect)
	if err != nil {
		return nil, err
	}
	if p.Child == "" {
		return parent, nil
	}
	child, err := p.newEffect(p.Child)
	if err != nil {
		return nil, err
	}
	slot := p.Slot
	if slot == "" {
		if slot = freeSlot(parent, nil); slot == "" {
			return nil, fmt.Errorf("%w: %s takes no child", ErrNoSlot, parent.Name())
		}
	}
	return effects.Compose(parent, slot, child)
}

func (p *Preset) newEffect(name string) (effects.Program, error) {
	if name == "gradient" && p.Curve != "" {
		curve, err := easing.Lookup(p.Curve)
		if err != nil {
			return nil, err
		}
		return effects.Gradient(curve), nil
	}
	return effects.New(name)
}

// Apply writes the preset's uniforms into set and loads its image into the
// free slot of prog, fitted to width by height.
func (p *Preset) Apply(prog effects.Program, set *inputs.Set, width, height int) error {
	names := make([]string, 0, len(p.Uniforms))
	for name := range p.Uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := set.Set(name, p.Uniforms[name].Value()); err != nil {
			return fmt.Errorf("preset uniform: %w", err)
		}
	}

	if p.Image == "" {
		return nil
	}
	slot := ImageSlot(prog)
	if slot == "" {
		return fmt.Errorf("%w: %s takes no image", ErrNoSlot, prog.Name())
	}
	sampler := inputs.DefaultSampler
	if p.Sampler != nil {
		sampler = *p.Sampler
	}
	ch, err := inputs.OpenImageChannel(p.Image, width, height, sampler)
	if err != nil {
		return err
	}
	return set.SetChannel(slot, ch)
}

// ImageSlot is the first channel slot in prog, innermost program first, that
// no child feeds. It is empty when every slot is taken.
func ImageSlot(prog effects.Program) string {
	return freeSlot(prog, nil)
}

func freeSlot(prog effects.Program, taken []string) string {
	c, ok := prog.(*effects.Composite)
	if !ok {
		for _, d := range prog.Uniforms() {
			if d.Kind == inputs.KindChannel && !slices.Contains(taken, d.Name) {
				return d.Name
			}
		}
		return ""
	}
	if slot := freeSlot(c.Child(), nil); slot != "" {
		return slot
	}
	return freeSlot(c.Parent(), append(taken, c.Slot()))
}
