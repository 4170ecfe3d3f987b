package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Buffer is an FBO a child program renders into and its parent samples.
type Buffer struct {
	fbo        uint32
	textureID  uint32
	resolution mgl32.Vec2
}

// NewBuffer creates a float framebuffer of width by height.
func NewBuffer(width, height int) (*Buffer, error) {
	width, height = max(width, 1), max(height, 1)
	b := &Buffer{}

	gl.GenTextures(1, &b.textureID)
	gl.BindTexture(gl.TEXTURE_2D, b.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		b.Destroy()
		return nil, fmt.Errorf("framebuffer is not complete: 0x%x", status)
	}
	b.resolution = mgl32.Vec2{float32(width), float32(height)}
	return b, nil
}

func (b *Buffer) BindForWriting() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
}

func (b *Buffer) UnbindForWriting() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (b *Buffer) GetTextureID() uint32 { return b.textureID }

func (b *Buffer) ChannelRes() mgl32.Vec2 { return b.resolution }

// Resize reallocates the texture storage when the size changed.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == int(b.resolution[0]) && height == int(b.resolution[1]) {
		return
	}
	b.resolution = mgl32.Vec2{float32(width), float32(height)}
	gl.BindTexture(gl.TEXTURE_2D, b.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (b *Buffer) Destroy() {
	gl.DeleteFramebuffers(1, &b.fbo)
	gl.DeleteTextures(1, &b.textureID)
}
