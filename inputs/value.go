package inputs

import "github.com/go-gl/mathgl/mgl32"

// Value is a tagged uniform value. Floats use V[0], vec2s use V[0:2] and
// colors use all four components.
type Value struct {
	Kind    Kind
	V       mgl32.Vec4
	Channel Channel
}

func Float(f float32) Value {
	return Value{Kind: KindFloat, V: mgl32.Vec4{f}}
}

func Vec2(x, y float32) Value {
	return Value{Kind: KindVec2, V: mgl32.Vec4{x, y}}
}

func Color(c mgl32.Vec4) Value {
	return Value{Kind: KindColor, V: c}
}

func ChannelValue(c Channel) Value {
	if c == nil {
		c = Transparent
	}
	return Value{Kind: KindChannel, Channel: c}
}

func (v Value) Float() float32 {
	return v.V[0]
}

func (v Value) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{v.V[0], v.V[1]}
}

func (v Value) Color() mgl32.Vec4 {
	return v.V
}
