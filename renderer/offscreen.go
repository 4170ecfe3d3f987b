package renderer

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// OffscreenRenderer is the 8-bit framebuffer a scene's root pass draws into.
// It is blitted to the window in window mode and read back when recording.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
	readback  []byte
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{}
	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	or.allocate(width, height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("main offscreen fbo is not complete")
	}
	return or, nil
}

func (or *OffscreenRenderer) allocate(width, height int) {
	or.width, or.height = max(width, 1), max(height, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(or.width), int32(or.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

// Resize reallocates the color texture when the size changed.
func (or *OffscreenRenderer) Resize(width, height int) {
	if max(width, 1) == or.width && max(height, 1) == or.height {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	or.allocate(width, height)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// ReadPixels copies the framebuffer into dst, top row first. dst must be
// width by height.
func (or *OffscreenRenderer) ReadPixels(dst *image.RGBA) {
	rowSize := or.width * 4
	if len(or.readback) != rowSize*or.height {
		or.readback = make([]byte, rowSize*or.height)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(or.readback))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	for y := 0; y < or.height; y++ {
		src := or.readback[(or.height-1-y)*rowSize:]
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowSize], src[:rowSize])
	}
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}
