package inputs

import "github.com/go-gl/mathgl/mgl32"

// Channel is a composable input: anything that can be sampled at a pixel
// coordinate. Coordinates are pixels with the origin at the top left.
type Channel interface {
	// Eval returns the premultiplied RGBA color at coord.
	Eval(coord mgl32.Vec2) mgl32.Vec4

	// ChannelRes returns the size of the input in pixels.
	ChannelRes() mgl32.Vec2
}

type transparent struct{}

func (transparent) Eval(mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{} }
func (transparent) ChannelRes() mgl32.Vec2     { return mgl32.Vec2{} }

// Transparent samples as transparent black everywhere. It is the neutral
// value of an unbound channel.
var Transparent Channel = transparent{}

// FuncChannel adapts a function to Channel.
type FuncChannel struct {
	Fn  func(coord mgl32.Vec2) mgl32.Vec4
	Res mgl32.Vec2
}

func (c FuncChannel) Eval(coord mgl32.Vec2) mgl32.Vec4 {
	return c.Fn(coord)
}

func (c FuncChannel) ChannelRes() mgl32.Vec2 {
	return c.Res
}

// Solid returns a channel of a single color.
func Solid(color mgl32.Vec4, res mgl32.Vec2) Channel {
	return FuncChannel{
		Fn:  func(mgl32.Vec2) mgl32.Vec4 { return color },
		Res: res,
	}
}
