package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/palette"
)

// ErrBadUniform is returned for a value that is not a number, a two, three
// or four element array or a hex color.
var ErrBadUniform = errors.New("bad uniform value")

// Uniform is a parameter value as written in a preset: a number is a float,
// [x, y] a vec2, [r, g, b] or [r, g, b, a] and "#RRGGBB[AA]" a color.
type Uniform struct {
	v inputs.Value
}

// Value is the uniform as a set value.
func (u Uniform) Value() inputs.Value { return u.v }

func (u *Uniform) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		u.v = inputs.Float(float32(x))
		return nil
	case string:
		c, ok := palette.Hex(x)
		if !ok {
			return fmt.Errorf("%w: %q is not a hex color", ErrBadUniform, x)
		}
		u.v = inputs.Color(c)
		return nil
	case []any:
		fs := make([]float32, len(x))
		for i, e := range x {
			f, ok := e.(float64)
			if !ok {
				return fmt.Errorf("%w: element %d of %s is not a number", ErrBadUniform, i, data)
			}
			fs[i] = float32(f)
		}
		return u.fromFloats(fs, string(data))
	}
	return fmt.Errorf("%w: %s", ErrBadUniform, data)
}

func (u Uniform) MarshalJSON() ([]byte, error) {
	v := u.v.V
	switch u.v.Kind {
	case inputs.KindFloat:
		return json.Marshal(v[0])
	case inputs.KindVec2:
		return json.Marshal(v[:2])
	case inputs.KindColor:
		return json.Marshal(v[:])
	}
	return nil, fmt.Errorf("%w: %s uniforms cannot be written", ErrBadUniform, u.v.Kind)
}

func (u *Uniform) fromFloats(fs []float32, src string) error {
	switch len(fs) {
	case 1:
		u.v = inputs.Float(fs[0])
	case 2:
		u.v = inputs.Vec2(fs[0], fs[1])
	case 3:
		u.v = inputs.Color(mgl32.Vec4{fs[0], fs[1], fs[2], 1})
	case 4:
		u.v = inputs.Color(mgl32.Vec4{fs[0], fs[1], fs[2], fs[3]})
	default:
		return fmt.Errorf("%w: %s has %d components", ErrBadUniform, src, len(fs))
	}
	return nil
}

// ParseAssignment parses a command-line "name=value" parameter. The value
// is a number, comma separated components or a hex color.
func ParseAssignment(s string) (string, Uniform, error) {
	name, value, ok := strings.Cut(s, "=")
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	if !ok || name == "" || value == "" {
		return "", Uniform{}, fmt.Errorf("%w: %q is not name=value", ErrBadUniform, s)
	}
	var u Uniform
	parts := strings.Split(value, ",")
	fs := make([]float32, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			if len(parts) == 1 {
				if c, ok := palette.Hex(value); ok {
					return name, Uniform{v: inputs.Color(c)}, nil
				}
			}
			return "", Uniform{}, fmt.Errorf("%w: %s=%q", ErrBadUniform, name, value)
		}
		fs = append(fs, float32(f))
	}
	if err := u.fromFloats(fs, value); err != nil {
		return "", Uniform{}, err
	}
	return name, u, nil
}

// Set stores u under name, creating the map if needed.
func (p *Preset) Set(name string, u Uniform) {
	if p.Uniforms == nil {
		p.Uniforms = map[string]Uniform{}
	}
	p.Uniforms[name] = u
}
