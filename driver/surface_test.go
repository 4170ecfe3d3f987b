package driver

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/shader"
)

// kernelProgram binds to a fixed kernel.
type kernelProgram struct {
	kernel effects.Kernel
}

func (p kernelProgram) Name() string            { return "kernel" }
func (p kernelProgram) Uniforms() []inputs.Decl { return nil }
func (p kernelProgram) Source() shader.Source   { return shader.Source{} }
func (p kernelProgram) Bind(inputs.Snapshot) effects.Kernel {
	return p.kernel
}

func TestSurfaceSamplesPixelCentres(t *testing.T) {
	var mu sync.Mutex
	seen := map[mgl32.Vec2]int{}
	s := NewSurface(5, 3)
	s.SetWorkers(2)
	_ = s.Attach(kernelProgram{func(c mgl32.Vec2) mgl32.Vec4 {
		mu.Lock()
		seen[c]++
		mu.Unlock()
		return mgl32.Vec4{c[0] / 5, c[1] / 3, 0, 1}
	}})
	if err := s.Draw(inputs.Snapshot{}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 15 {
		t.Errorf("kernel saw %d coordinates, want 15", len(seen))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			c := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			if seen[c] != 1 {
				t.Errorf("centre %v evaluated %d times, want 1", c, seen[c])
			}
			want := color.RGBA{quantize(c[0] / 5), quantize(c[1] / 3), 0, 255}
			if got := s.Image().RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestStorePixel(t *testing.T) {
	nan := math32.NaN()
	tests := []struct {
		in   mgl32.Vec4
		want [4]byte
	}{
		{mgl32.Vec4{1, 0.5, 0, 1}, [4]byte{255, 128, 0, 255}},
		{mgl32.Vec4{2, -1, 1.5, 3}, [4]byte{255, 0, 255, 255}},
		{mgl32.Vec4{1, 1, 1, 0.5}, [4]byte{128, 128, 128, 128}},
		{mgl32.Vec4{nan, 0.2, nan, nan}, [4]byte{0, 0, 0, 0}},
		{mgl32.Vec4{0, 0, 0, 0}, [4]byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		var got [4]byte
		storePixel(got[:], tt.in)
		if got != tt.want {
			t.Errorf("storePixel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSurfaceDetached(t *testing.T) {
	s := NewSurface(2, 2)
	if err := s.Draw(inputs.Snapshot{}); !errors.Is(err, ErrDetached) {
		t.Errorf("Draw() before Attach = %v, want ErrDetached", err)
	}
	if err := s.Attach(nil); err == nil {
		t.Errorf("Attach(nil) succeeded")
	}
	_ = s.Attach(effects.Basic())
	_ = s.Detach()
	if err := s.Draw(inputs.Snapshot{}); !errors.Is(err, ErrDetached) {
		t.Errorf("Draw() after Detach = %v, want ErrDetached", err)
	}
}

func TestSurfaceWorkersAgree(t *testing.T) {
	p := effects.Polygon()
	set, err := inputs.NewSet(p.Uniforms()...)
	if err != nil {
		t.Fatal(err)
	}
	set.WriteFrame(inputs.Frame{Time: 4.2, Resolution: mgl32.Vec2{37, 23}})
	snap := set.Snapshot()

	one := NewSurface(37, 23)
	one.SetWorkers(1)
	many := NewSurface(37, 23)
	many.SetWorkers(16)
	for _, s := range []*Surface{one, many} {
		_ = s.Attach(p)
		if err := s.Draw(snap); err != nil {
			t.Fatal(err)
		}
	}
	a, b := one.Image().Pix, many.Image().Pix
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %d with one worker, %d with sixteen", i, a[i], b[i])
		}
	}
}

func TestSurfaceSink(t *testing.T) {
	s := NewSurface(2, 1)
	_ = s.Attach(kernelProgram{func(mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{1, 0, 0, 1} }})
	var got *image.RGBA
	s.SetSink(func(img *image.RGBA) error {
		got = img
		return nil
	})
	_ = s.Draw(inputs.Snapshot{})
	if got == nil || got.RGBAAt(1, 0) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("sink received %v", got)
	}

	boom := errors.New("disk full")
	s.SetSink(func(*image.RGBA) error { return boom })
	if err := s.Draw(inputs.Snapshot{}); !errors.Is(err, boom) {
		t.Errorf("Draw() with failing sink = %v, want %v", err, boom)
	}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface(4, 4)
	before := s.Image()
	s.Resize(4, 4)
	if s.Image() != before {
		t.Errorf("same-size Resize reallocated")
	}
	s.Resize(8, 2)
	if w, h := s.Size(); w != 8 || h != 2 {
		t.Errorf("Size() = %d, %d, want 8, 2", w, h)
	}
	empty := NewSurface(0, 0)
	_ = empty.Attach(effects.Basic())
	if err := empty.Draw(inputs.Snapshot{}); err != nil {
		t.Errorf("Draw() on empty surface = %v", err)
	}
}
