// Package viewer shows an effect rendered on the CPU surface in an ebiten
// window. The mouse drives the pointer uniforms and press animations, space
// pauses, the arrow keys step through the effect registry, O opens an image
// for the effect's free channel slot, R restarts the clock and Esc or Q
// quits.
package viewer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/driver"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/preset"
)

// Game is an ebiten.Game around a driver drawing onto a Surface.
type Game struct {
	driver  *driver.Driver
	surface *driver.Surface
	frame   *ebiten.Image
	width   int
	height  int

	// image is the channel opened by the user, kept across effect switches.
	image   inputs.Channel
	names   []string
	prevKey map[ebiten.Key]bool
	lastErr error
}

// New wraps d, whose target must be s. The driver is started on the first
// update.
func New(d *driver.Driver, s *driver.Surface) *Game {
	w, h := s.Size()
	return &Game{
		driver:  d,
		surface: s,
		width:   w,
		height:  h,
		names:   effects.Names(),
		prevKey: map[ebiten.Key]bool{},
	}
}

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := ebiten.IsKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) Update() error {
	if g.driver.State() == driver.Idle {
		if err := g.driver.Start(); err != nil {
			return err
		}
	}

	x, y := ebiten.CursorPosition()
	if x >= 0 && y >= 0 && x < g.width && y < g.height {
		g.driver.SetPointer(float32(x)+0.5, float32(y)+0.5)
	}
	g.driver.SetPointerDown(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	if g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.justPressed(ebiten.KeySpace) {
		g.lastErr = g.togglePause()
	}
	if g.justPressed(ebiten.KeyR) {
		g.lastErr = g.driver.Restart()
	}
	if g.justPressed(ebiten.KeyRight) {
		g.lastErr = g.step(1)
	}
	if g.justPressed(ebiten.KeyLeft) {
		g.lastErr = g.step(-1)
	}
	if g.justPressed(ebiten.KeyO) {
		g.lastErr = g.openImageDialog()
	}

	return g.driver.Tick()
}

func (g *Game) togglePause() error {
	if g.driver.State() == driver.Paused {
		return g.driver.Resume()
	}
	return g.driver.Pause()
}

// step switches to the effect delta places away in the registry.
func (g *Game) step(delta int) error {
	i := slices.Index(g.names, g.driver.Program().Name())
	i = ((i+delta)%len(g.names) + len(g.names)) % len(g.names)
	p, err := effects.New(g.names[i])
	if err != nil {
		return err
	}
	if err := g.driver.SetProgram(p); err != nil {
		return err
	}
	goshaderfx.Logger().Info("switched effect", "effect", p.Name())
	return g.bindImage()
}

func (g *Game) openImageDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Image"),
		zenity.FileFilters{{
			Name:     "Images",
			Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.webp"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.LoadImage(filename)
}

// LoadImage opens path, fitted to the surface, as the image channel.
func (g *Game) LoadImage(path string) error {
	ch, err := inputs.OpenImageChannel(path, g.width, g.height, inputs.DefaultSampler)
	if err != nil {
		return err
	}
	g.image = ch
	return g.bindImage()
}

func (g *Game) bindImage() error {
	if g.image == nil {
		return nil
	}
	slot := preset.ImageSlot(g.driver.Program())
	if slot == "" {
		return nil
	}
	return g.driver.SetChannel(slot, g.image)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.width, g.height)
	}
	g.frame.WritePixels(g.surface.Image().Pix)
	screen.DrawImage(g.frame, nil)

	status := fmt.Sprintf("%s  %s  t=%.2f", g.driver.Program().Name(), g.driver.State(), g.driver.Clock().Seconds())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and blocks until it is closed. The driver is stopped
// on return.
func Run(g *Game, title string) error {
	defer g.driver.Stop()
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
