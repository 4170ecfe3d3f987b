// Package encoder turns rendered frames into files: a video through an
// external ffmpeg process or a numbered PNG sequence.
package encoder

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrClosed is returned by Encode after Close.
	ErrClosed = errors.New("encoder closed")
	// ErrFrameSize is returned for a frame whose size differs from the
	// encoder's or whose pixel buffer does not match its size.
	ErrFrameSize = errors.New("frame size mismatch")
)

// Frame represents a single rendered frame's data, ready for encoding.
// Pixels holds RGBA8, rows top to bottom with no padding.
type Frame struct {
	Pixels []byte
	Width  int
	Height int
	PTS    int64
}

// FrameFromImage copies img into a new frame.
func FrameFromImage(img *image.RGBA, pts int64) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(pix[y*w*4:(y+1)*w*4], row[:w*4])
	}
	return &Frame{Pixels: pix, Width: w, Height: h, PTS: pts}
}

// Image wraps the frame's pixels without copying.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: f.Width * 4,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

func (f *Frame) validate(width, height int) error {
	if f.Width != width || f.Height != height {
		return fmt.Errorf("%w: frame %d is %dx%d, encoder is %dx%d", ErrFrameSize, f.PTS, f.Width, f.Height, width, height)
	}
	if len(f.Pixels) != width*height*4 {
		return fmt.Errorf("%w: frame %d has %d bytes, want %d", ErrFrameSize, f.PTS, len(f.Pixels), width*height*4)
	}
	return nil
}

// Encoder consumes frames in presentation order. Close flushes and releases
// the output; an encoder is not safe for concurrent use.
type Encoder interface {
	Encode(f *Frame) error
	Close() error
}
