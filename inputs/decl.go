package inputs

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the type of a uniform value.
type Kind int

const (
	KindFloat Kind = iota
	KindVec2
	KindColor
	KindChannel
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindColor:
		return "color"
	case KindChannel:
		return "channel"
	}
	return "unknown"
}

// GLSLType is the uniform type the kind is declared as in generated source.
func (k Kind) GLSLType() string {
	switch k {
	case KindVec2:
		return "vec2"
	case KindColor:
		return "vec4"
	case KindChannel:
		return "sampler2D"
	}
	return "float"
}

// Role tells the frame driver which host input, if any, feeds a uniform.
type Role int

const (
	// RoleParam is an effect parameter, written only by the host or a preset.
	RoleParam Role = iota
	// RoleResolution receives the surface size in pixels.
	RoleResolution
	// RoleTime receives the frame clock in seconds.
	RoleTime
	// RolePointer receives the pointer position in pixels.
	RolePointer
	// RolePointerUV receives the pointer position divided by the surface
	// size, clamped to [0, 1].
	RolePointerUV
)

// Press animates a float parameter toward Value while the pointer is down and
// back to the declared default on release.
type Press struct {
	Value    float32
	Duration time.Duration
	Curve    string
}

// Decl declares one uniform: its name, kind, role and neutral default. Min
// and Max describe the control range of a parameter; equal bounds mean the
// parameter is unbounded.
type Decl struct {
	Name    string
	Kind    Kind
	Role    Role
	Default Value
	Min     float32
	Max     float32
	Press   *Press
}

// Bounded reports whether the declaration carries a control range.
func (d Decl) Bounded() bool {
	return d.Min != d.Max
}

// Clamp constrains v to the declared range when there is one.
func (d Decl) Clamp(v float32) float32 {
	if !d.Bounded() {
		return v
	}
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Resolution declares a vec2 fed with the surface size.
func Resolution(name string) Decl {
	return Decl{Name: name, Kind: KindVec2, Role: RoleResolution, Default: Vec2(0, 0)}
}

// Time declares a float fed with the frame clock.
func Time(name string) Decl {
	return Decl{Name: name, Kind: KindFloat, Role: RoleTime, Default: Float(0)}
}

// Pointer declares a vec2 fed with the pointer position in pixels.
func Pointer(name string) Decl {
	return Decl{Name: name, Kind: KindVec2, Role: RolePointer, Default: Vec2(0, 0)}
}

// PointerUV declares a vec2 fed with the normalized pointer position.
func PointerUV(name string, def mgl32.Vec2) Decl {
	return Decl{Name: name, Kind: KindVec2, Role: RolePointerUV, Default: Vec2(def[0], def[1])}
}

// FloatParam declares a float parameter with a control range.
func FloatParam(name string, def, min, max float32) Decl {
	return Decl{Name: name, Kind: KindFloat, Default: Float(def), Min: min, Max: max}
}

// Vec2Param declares a vec2 parameter.
func Vec2Param(name string, def mgl32.Vec2) Decl {
	return Decl{Name: name, Kind: KindVec2, Default: Vec2(def[0], def[1])}
}

// ColorParam declares an RGBA color parameter.
func ColorParam(name string, def mgl32.Vec4) Decl {
	return Decl{Name: name, Kind: KindColor, Default: Color(def)}
}

// Slot declares a channel input. Its default samples as transparent black.
func Slot(name string) Decl {
	return Decl{Name: name, Kind: KindChannel, Default: ChannelValue(Transparent)}
}
