package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/inputs"
)

// texture is a 2D texture holding a channel, stored bottom row first.
type texture struct {
	id         uint32
	resolution mgl32.Vec2
	sampler    inputs.Sampler
	pixels     *image.RGBA
}

func newTexture(sampler inputs.Sampler) *texture {
	t := &texture{sampler: sampler}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, getWrapMode(sampler.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, getWrapMode(sampler.Wrap))
	minFilter, magFilter := getFilterMode(sampler.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// newImageTexture uploads the pixels of an image channel.
func newImageTexture(ch *inputs.ImageChannel) *texture {
	t := newTexture(ch.Sampler())
	t.upload(inputs.VFlip(ch.RGBA()))
	t.resolution = ch.ChannelRes()
	return t
}

// upload replaces the texture contents with rgba, whose first row is the
// bottom of the texture.
func (t *texture) upload(rgba *image.RGBA) {
	width := int32(rgba.Rect.Dx())
	height := int32(rgba.Rect.Dy())

	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rgba.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	if t.sampler.Filter == "mipmap" {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// rasterize evaluates ch at every pixel centre of its resolution and uploads
// the result. It serves channels that only exist as functions.
func (t *texture) rasterize(ch inputs.Channel) {
	res := ch.ChannelRes()
	w, h := max(int(res[0]), 1), max(int(res[1]), 1)
	if t.pixels == nil || t.pixels.Rect.Dx() != w || t.pixels.Rect.Dy() != h {
		t.pixels = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := 0; y < h; y++ {
		// bottom row first
		row := t.pixels.Pix[(h-1-y)*t.pixels.Stride:]
		for x := 0; x < w; x++ {
			c := ch.Eval(mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5})
			for i := range 4 {
				row[x*4+i] = toByte(c[i])
			}
		}
	}
	t.upload(t.pixels)
	t.resolution = res
}

func toByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (t *texture) Destroy() {
	gl.DeleteTextures(1, &t.id)
}
