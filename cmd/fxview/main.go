package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/driver"
	"github.com/richinsley/goshaderfx/options"
	"github.com/richinsley/goshaderfx/viewer"
)

func main() {
	opts, fs, err := options.Parse("fxview", os.Args[1:])
	if errors.Is(err, options.ErrHelp) {
		fmt.Println("fxview: effect viewer on the CPU renderer")
		fmt.Println("Mouse: pointer, Space: pause, Left/Right: effect, O: open image, R: restart, Esc/Q: quit")
		fs.PrintDefaults()
		return
	}
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	goshaderfx.SetLogger(slog.Default())

	p, err := opts.Resolve()
	if err != nil {
		log.Fatalf("Error loading preset: %v", err)
	}
	prog, err := p.Program()
	if err != nil {
		log.Fatalf("Error building effect: %v", err)
	}

	width, height := *opts.Width, *opts.Height
	s := driver.NewSurface(width, height)
	if *opts.Workers > 0 {
		s.SetWorkers(*opts.Workers)
	}
	clock := driver.Measured()
	clock.SetScale(*opts.Speed)
	d, err := driver.New(prog, s, clock)
	if err != nil {
		log.Fatalf("Error creating driver: %v", err)
	}
	if err := p.Apply(prog, d.Uniforms(), width, height); err != nil {
		log.Fatalf("Error applying preset: %v", err)
	}

	g := viewer.New(d, s)
	if p.Image != "" {
		// keeps the image bound when switching effects
		if err := g.LoadImage(p.Image); err != nil {
			log.Fatalf("Error loading image: %v", err)
		}
	}
	if err := viewer.Run(g, "fxview - "+prog.Name()); err != nil {
		log.Fatalf("Viewer failed: %v", err)
	}
}
