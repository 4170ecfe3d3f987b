package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/driver"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/encoder"
	"github.com/richinsley/goshaderfx/glfwcontext"
	"github.com/richinsley/goshaderfx/options"
	"github.com/richinsley/goshaderfx/preset"
	"github.com/richinsley/goshaderfx/renderer"
)

func init() {
	runtime.LockOSThread()
}

func listEffects() {
	for _, e := range effects.Entries() {
		fmt.Printf("%-18s %s\n", e.Name, e.Summary)
	}
}

func printSource(prog effects.Program) error {
	var err error
	effects.Compositions(prog, func(p effects.Program) {
		if err != nil {
			return
		}
		var src string
		if src, err = effects.FragmentSource(p); err == nil {
			fmt.Printf("// ---- %s ----\n%s\n", p.Name(), src)
		}
	})
	return err
}

func runWindow(ctx context.Context, opts *options.ShaderOptions, p *preset.Preset, prog effects.Program) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	width, height := *opts.Width, *opts.Height
	win, err := glfwcontext.New(width, height, "goshaderfx - "+prog.Name(), true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()

	r, err := renderer.NewRenderer(win, width, height, false)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	clock := driver.Measured()
	clock.SetScale(*opts.Speed)
	d, err := driver.New(prog, r, clock)
	if err != nil {
		return err
	}
	defer d.Stop()
	if err := p.Apply(prog, d.Uniforms(), width, height); err != nil {
		return err
	}

	win.RegisterKeyCallback(glfw.KeySpace, func() {
		if d.State() == driver.Paused {
			d.Resume()
		} else {
			d.Pause()
		}
	})
	win.RegisterKeyCallback(glfw.KeyR, func() { d.Restart() })

	log.Println("Starting interactive render loop...")
	return r.Run(ctx, d)
}

// offscreenTarget returns the recorder frames are drawn on and a function
// releasing it.
func offscreenTarget(opts *options.ShaderOptions, title string) (driver.Recorder, func(), error) {
	width, height := *opts.Width, *opts.Height
	if !*opts.GPU {
		s := driver.NewSurface(width, height)
		if *opts.Workers > 0 {
			s.SetWorkers(*opts.Workers)
		}
		return s, func() {}, nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize graphics: %w", err)
	}
	win, err := glfwcontext.New(width, height, title, false)
	if err != nil {
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create hidden window: %w", err)
	}
	r, err := renderer.NewRenderer(win, width, height, true)
	if err != nil {
		win.Shutdown()
		glfwcontext.TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r, func() {
		r.Shutdown()
		win.Shutdown()
		glfwcontext.TerminateGraphics()
	}, nil
}

func runOffscreen(ctx context.Context, opts *options.ShaderOptions, p *preset.Preset, prog effects.Program) error {
	width, height, fps := *opts.Width, *opts.Height, *opts.FPS
	target, release, err := offscreenTarget(opts, "goshaderfx - "+prog.Name())
	if err != nil {
		return err
	}
	defer release()

	d, err := driver.New(prog, target, driver.Fixed(*opts.Speed/float64(fps)))
	if err != nil {
		return err
	}
	if err := p.Apply(prog, d.Uniforms(), width, height); err != nil {
		return err
	}

	output := *opts.OutputFile
	var enc encoder.Encoder
	if *opts.Mode == options.ModePNG {
		if !opts.IsSet("output") {
			output = "frames"
		}
		enc, err = encoder.NewPNGSequence(output, encoder.DefaultPattern)
	} else {
		enc, err = encoder.NewFFmpeg(encoder.FFmpegOptions{
			Output:     output,
			Width:      width,
			Height:     height,
			FPS:        fps,
			Codec:      *opts.Codec,
			HWAccel:    *opts.HWAccel,
			Bitrate:    *opts.Bitrate,
			FFmpegPath: *opts.FFMPEGPath,
		})
	}
	if err != nil {
		return err
	}

	frames := driver.FramesFor(*opts.Duration, fps)
	log.Printf("Rendering %d frames of %s at %dx%d...", frames, prog.Name(), width, height)
	if err := driver.RunOffscreen(ctx, d, target, frames, enc); err != nil {
		return fmt.Errorf("offscreen rendering failed: %w", err)
	}
	log.Printf("Successfully rendered to %s", output)
	return nil
}

func main() {
	opts, fs, err := options.Parse("goshaderfx", os.Args[1:])
	if errors.Is(err, options.ErrHelp) {
		fmt.Println("goshaderfx shader effect viewer/recorder")
		fs.PrintDefaults()
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	goshaderfx.SetLogger(slog.Default())

	if *opts.List {
		listEffects()
		return
	}

	p, err := opts.Resolve()
	if err != nil {
		log.Fatalf("Error loading preset: %v", err)
	}
	prog, err := p.Program()
	if err != nil {
		log.Fatalf("Error building effect: %v", err)
	}

	if *opts.Source {
		if err := printSource(prog); err != nil {
			log.Fatalf("Error composing shader: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *opts.Mode {
	case options.ModeWindow:
		err = runWindow(ctx, opts, p, prog)
	default:
		err = runOffscreen(ctx, opts, p, prog)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}
