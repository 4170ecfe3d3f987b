package driver

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

// ErrDetached is returned by Draw when no program is attached.
var ErrDetached = errors.New("no program attached")

// Target is where a driver draws. Attach and Detach bracket the use of a
// program; Draw renders one frame of it.
type Target interface {
	Attach(p effects.Program) error
	Detach() error
	// Size is the drawable size in pixels.
	Size() (width, height int)
	Draw(u inputs.Snapshot) error
}

// Sink receives every frame a Recorder draws. The image is reused by the
// next Draw, so a sink that keeps it must copy it.
type Sink func(img *image.RGBA) error

// Surface is a CPU render target. Draw evaluates the program's kernel once
// per pixel, at the pixel centre, spreading rows across workers.
type Surface struct {
	mu      sync.Mutex
	img     *image.RGBA
	program effects.Program
	workers int
	sink    Sink
}

var _ Recorder = (*Surface)(nil)

// NewSurface allocates a width by height surface drawn by GOMAXPROCS
// workers.
func NewSurface(width, height int) *Surface {
	return &Surface{
		img:     image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		workers: runtime.GOMAXPROCS(0),
	}
}

// SetWorkers bounds the number of row bands drawn at once.
func (s *Surface) SetWorkers(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = max(n, 1)
}

// SetSink installs fn to receive every drawn frame. nil removes it.
func (s *Surface) SetSink(fn Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = fn
}

func (s *Surface) Attach(p effects.Program) error {
	if p == nil {
		return fmt.Errorf("attach: nil program")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = p
	return nil
}

func (s *Surface) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.program = nil
	return nil
}

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the image. The next Draw fills it.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// Image is the last drawn frame. It is overwritten by the next Draw.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// Draw binds the attached program to u and renders every pixel.
func (s *Surface) Draw(u inputs.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program == nil {
		return ErrDetached
	}
	kernel := s.program.Bind(u)
	render(s.img, kernel, s.workers)
	if s.sink != nil {
		if err := s.sink(s.img); err != nil {
			return fmt.Errorf("sink: %w", err)
		}
	}
	return nil
}

// render evaluates kernel over img in row bands, at most workers at a time.
func render(img *image.RGBA, kernel effects.Kernel, workers int) {
	b := img.Bounds()
	h := b.Dy()
	if h == 0 || b.Dx() == 0 {
		return
	}
	// a few bands per worker keeps them busy when rows differ in cost
	band := max(h/(max(workers, 1)*4), 1)

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < b.Dx(); x++ {
					c := kernel(mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5})
					storePixel(row[x*4:x*4+4], c)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

// storePixel writes c as premultiplied RGBA8: every channel is clamped to
// [0, 1] and color to no more than alpha. NaN stores as zero.
func storePixel(dst []byte, c mgl32.Vec4) {
	a := unit(c[3])
	dst[0] = quantize(math32.Min(unit(c[0]), a))
	dst[1] = quantize(math32.Min(unit(c[1]), a))
	dst[2] = quantize(math32.Min(unit(c[2]), a))
	dst[3] = quantize(a)
}

func unit(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func quantize(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
