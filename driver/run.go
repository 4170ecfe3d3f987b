package driver

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/encoder"
)

// FrameSource paces a render loop. Wait blocks until the next frame is due
// and returns io.EOF when there are no more frames.
type FrameSource interface {
	Wait(ctx context.Context) error
}

// Run starts d if it is idle and ticks it once per frame of src until src
// is exhausted, d is stopped or ctx is done.
func (d *Driver) Run(ctx context.Context, src FrameSource) error {
	if err := d.Start(); err != nil {
		return err
	}
	for {
		if err := src.Wait(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := d.Tick(); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}

// FrameTicker is a FrameSource paced by wall time.
type FrameTicker struct {
	t *time.Ticker
}

// Ticker returns a source delivering fps frames a second. A rate of zero
// or less means 60.
func Ticker(fps int) *FrameTicker {
	if fps <= 0 {
		fps = 60
	}
	return &FrameTicker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *FrameTicker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.t.C:
		return nil
	}
}

// Stop releases the ticker.
func (t *FrameTicker) Stop() { t.t.Stop() }

// FrameCount is a FrameSource delivering a fixed number of frames as fast
// as they are drawn.
type FrameCount struct {
	n, done int
}

// Frames returns a source of n frames.
func Frames(n int) *FrameCount {
	return &FrameCount{n: n}
}

func (c *FrameCount) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.done >= c.n {
		return io.EOF
	}
	c.done++
	return nil
}

// numBuffers is the depth of the queue between renderer and encoder.
const numBuffers = 3

// FramesFor is the number of frames in duration seconds at fps.
func FramesFor(duration float64, fps int) int {
	return int(duration * float64(fps))
}

// Recorder is a Target that hands every drawn frame to a sink.
type Recorder interface {
	Target
	SetSink(fn Sink)
}

// RunOffscreen renders frames frames of d onto s, which must be d's target,
// and encodes them on a separate goroutine. Drawing happens on the calling
// goroutine, so a GL target stays on its thread. The driver should carry a
// fixed clock. d is stopped and enc closed on return.
func RunOffscreen(ctx context.Context, d *Driver, s Recorder, frames int, enc encoder.Encoder) error {
	log := goshaderfx.Logger()
	log.Info("starting offscreen render", "program", d.Program().Name(), "frames", frames)

	frameChan := make(chan *encoder.Frame, numBuffers)
	g, ctx := errgroup.WithContext(ctx)

	// consumer
	g.Go(func() error {
		for frame := range frameChan {
			if err := enc.Encode(frame); err != nil {
				enc.Close()
				return fmt.Errorf("encode frame %d: %w", frame.PTS, err)
			}
		}
		return enc.Close()
	})

	// producer
	var pts int64
	s.SetSink(func(img *image.RGBA) error {
		frame := encoder.FrameFromImage(img, pts)
		pts++
		select {
		case frameChan <- frame:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	runErr := func() error {
		defer close(frameChan)
		defer s.SetSink(nil)
		defer d.Stop()
		return d.Run(ctx, Frames(frames))
	}()

	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	log.Info("offscreen render finished", "frames", pts)
	return nil
}
