package inputs

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	goshaderfx "github.com/richinsley/goshaderfx"
)

// Sampler controls how an image channel is read.
type Sampler struct {
	Filter string `json:"filter"` // "nearest" or "linear"
	Wrap   string `json:"wrap"`   // "clamp", "repeat" or "decal"
	VFlip  bool   `json:"vflip"`
}

// DefaultSampler matches how the effects expect to read a photo.
var DefaultSampler = Sampler{Filter: "linear", Wrap: "clamp"}

// ImageChannel is a static image sampled on the CPU. The GL renderer uploads
// the same pixels as a texture.
type ImageChannel struct {
	rgba       *image.RGBA
	resolution mgl32.Vec2
	sampler    Sampler
}

// VFlip returns a vertically flipped copy of src.
func VFlip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// NewImageChannel converts img to RGBA and wraps it as a channel.
func NewImageChannel(img image.Image, sampler Sampler) (*ImageChannel, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if sampler.VFlip {
		goshaderfx.Logger().Debug("image channel: applying vertical flip")
		rgba = VFlip(rgba)
	}
	if sampler.Filter == "" {
		sampler.Filter = DefaultSampler.Filter
	}
	if sampler.Wrap == "" {
		sampler.Wrap = DefaultSampler.Wrap
	}

	return &ImageChannel{
		rgba:       rgba,
		resolution: mgl32.Vec2{float32(b.Dx()), float32(b.Dy())},
		sampler:    sampler,
	}, nil
}

// LoadImage decodes a PNG, JPEG or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	goshaderfx.Logger().Info("image loaded", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// FitImage scales img to cover a w x h surface and crops the overflow evenly
// on both sides, so the result is exactly w x h.
func FitImage(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	sb := img.Bounds()
	if w <= 0 || h <= 0 || sb.Empty() {
		return dst
	}

	scale := math32.Max(float32(w)/float32(sb.Dx()), float32(h)/float32(sb.Dy()))
	cropW := int(math32.Round(float32(w) / scale))
	cropH := int(math32.Round(float32(h) / scale))
	cropW = min(max(cropW, 1), sb.Dx())
	cropH = min(max(cropH, 1), sb.Dy())
	x0 := sb.Min.X + (sb.Dx()-cropW)/2
	y0 := sb.Min.Y + (sb.Dy()-cropH)/2
	src := image.Rect(x0, y0, x0+cropW, y0+cropH)

	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// OpenImageChannel loads path, fits it to w x h when both are positive and
// wraps it as a channel.
func OpenImageChannel(path string, w, h int, sampler Sampler) (*ImageChannel, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	if w > 0 && h > 0 {
		img = FitImage(img, w, h)
	}
	return NewImageChannel(img, sampler)
}

// RGBA returns the pixels the channel samples. Callers must not modify them.
func (c *ImageChannel) RGBA() *image.RGBA {
	return c.rgba
}

func (c *ImageChannel) Sampler() Sampler {
	return c.sampler
}

func (c *ImageChannel) ChannelRes() mgl32.Vec2 {
	return c.resolution
}

// Eval samples the image at a pixel coordinate. Pixel centres sit at
// half-integer coordinates.
func (c *ImageChannel) Eval(coord mgl32.Vec2) mgl32.Vec4 {
	if c.sampler.Filter == "nearest" {
		return c.texel(int(math32.Floor(coord[0])), int(math32.Floor(coord[1])))
	}

	x := coord[0] - 0.5
	y := coord[1] - 0.5
	x0 := math32.Floor(x)
	y0 := math32.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := c.texel(ix, iy).Mul(1 - fx).Add(c.texel(ix+1, iy).Mul(fx))
	bottom := c.texel(ix, iy+1).Mul(1 - fx).Add(c.texel(ix+1, iy+1).Mul(fx))
	return top.Mul(1 - fy).Add(bottom.Mul(fy))
}

func (c *ImageChannel) texel(x, y int) mgl32.Vec4 {
	w, h := c.rgba.Rect.Dx(), c.rgba.Rect.Dy()
	switch c.sampler.Wrap {
	case "repeat":
		x = ((x % w) + w) % w
		y = ((y % h) + h) % h
	case "decal":
		if x < 0 || y < 0 || x >= w || y >= h {
			return mgl32.Vec4{}
		}
	default:
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
	}
	i := c.rgba.PixOffset(x, y)
	p := c.rgba.Pix[i : i+4 : i+4]
	return mgl32.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}
