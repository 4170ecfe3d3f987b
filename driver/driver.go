// Package driver runs effects frame by frame. A Driver owns the frame clock
// and the uniform set of one program; every Tick advances the clock, feeds
// time, surface size and pointer into the set, steps press animations and
// hands an immutable snapshot to its Target, all before the tick returns.
package driver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

// ErrStopped is returned by every operation on a stopped driver.
var ErrStopped = errors.New("driver stopped")

// State is the lifecycle state of a Driver.
type State int

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Driver advances one program on one target. Tick, Start, Pause, Resume and
// Stop are serialized; the pointer and uniform setters may be called from
// any goroutine and take effect on the next tick.
type Driver struct {
	mu       sync.Mutex
	state    State
	clock    *Clock
	target   Target
	program  effects.Program
	set      *inputs.Set
	tweens   []*Tween
	attached bool
	lastTime float64

	input      sync.Mutex
	pointer    mgl32.Vec2
	hasPointer bool
	down       bool
}

// New builds an idle driver for p drawing on target. A nil clock is a fixed
// clock with DefaultStep.
func New(p effects.Program, target Target, clock *Clock) (*Driver, error) {
	if target == nil {
		return nil, fmt.Errorf("driver: nil target")
	}
	if clock == nil {
		clock = Fixed(DefaultStep)
	}
	set, tweens, err := build(p)
	if err != nil {
		return nil, err
	}
	return &Driver{clock: clock, target: target, program: p, set: set, tweens: tweens}, nil
}

// build resolves the uniform set and press tweens of p without touching any
// driver state.
func build(p effects.Program) (*inputs.Set, []*Tween, error) {
	if p == nil {
		return nil, nil, fmt.Errorf("driver: nil program")
	}
	set, err := inputs.NewSet(p.Uniforms()...)
	if err != nil {
		return nil, nil, fmt.Errorf("uniforms of %s: %w", p.Name(), err)
	}
	var tweens []*Tween
	for _, decl := range set.Decls() {
		if decl.Press == nil {
			continue
		}
		tw, err := NewTween(decl)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		tweens = append(tweens, tw)
	}
	return set, tweens, nil
}

// Program is the program being driven.
func (d *Driver) Program() effects.Program {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.program
}

// Uniforms is the program's uniform set. Writes to it are picked up by the
// next tick; role-fed uniforms are overwritten every tick.
func (d *Driver) Uniforms() *inputs.Set {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.set
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Clock is the driver's frame clock. It must only be read between ticks.
func (d *Driver) Clock() *Clock { return d.clock }

// Start attaches the program to the target and begins running. Starting a
// running or paused driver does nothing.
func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Stopped:
		return ErrStopped
	case Running, Paused:
		return nil
	}
	if err := d.attach(); err != nil {
		return err
	}
	d.state = Running
	goshaderfx.Logger().Info("driver started", "program", d.program.Name())
	return nil
}

func (d *Driver) attach() error {
	if err := d.target.Attach(d.program); err != nil {
		return fmt.Errorf("attach %s: %w", d.program.Name(), err)
	}
	d.attached = true
	return nil
}

func (d *Driver) detach() error {
	if !d.attached {
		return nil
	}
	d.attached = false
	if err := d.target.Detach(); err != nil {
		return fmt.Errorf("detach %s: %w", d.program.Name(), err)
	}
	return nil
}

// Pause freezes the clock. Ticks while paused still redraw.
func (d *Driver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Stopped:
		return ErrStopped
	case Running:
		d.state = Paused
	}
	return nil
}

// Resume restarts a paused clock from where it stopped.
func (d *Driver) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case Stopped:
		return ErrStopped
	case Paused:
		d.clock.Resume()
		d.state = Running
	}
	return nil
}

// Stop detaches the program and ends the driver for good. Stopping twice is
// harmless.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return nil
	}
	d.state = Stopped
	goshaderfx.Logger().Info("driver stopped", "program", d.program.Name(), "frames", d.clock.Frames())
	return d.detach()
}

// Restart resets the clock to zero.
func (d *Driver) Restart() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return ErrStopped
	}
	d.clock.Reset()
	d.lastTime = 0
	return nil
}

// SetProgram swaps the driven program. Parameter values do not carry over;
// the clock keeps running. If p is invalid or cannot be attached, the
// previous program stays in place.
func (d *Driver) SetProgram(p effects.Program) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Stopped {
		return ErrStopped
	}
	set, tweens, err := build(p)
	if err != nil {
		return err
	}
	wasAttached := d.attached
	if err := d.detach(); err != nil {
		return err
	}
	old, oldSet, oldTweens := d.program, d.set, d.tweens
	d.program, d.set, d.tweens = p, set, tweens
	if !wasAttached {
		return nil
	}
	if err := d.attach(); err != nil {
		d.program, d.set, d.tweens = old, oldSet, oldTweens
		if rerr := d.attach(); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	return nil
}

// SetPointer records the pointer position in pixels from the top left.
func (d *Driver) SetPointer(x, y float32) {
	d.input.Lock()
	defer d.input.Unlock()
	d.pointer = mgl32.Vec2{x, y}
	d.hasPointer = true
}

// SetPointerDown records whether the pointer is pressed.
func (d *Driver) SetPointerDown(down bool) {
	d.input.Lock()
	defer d.input.Unlock()
	d.down = down
}

// Pointer returns the last pointer position and whether one was seen.
func (d *Driver) Pointer() (mgl32.Vec2, bool) {
	d.input.Lock()
	defer d.input.Unlock()
	return d.pointer, d.hasPointer
}

func (d *Driver) SetFloat(name string, f float32) error {
	return d.Uniforms().SetFloat(name, f)
}

func (d *Driver) SetVec2(name string, x, y float32) error {
	return d.Uniforms().SetVec2(name, x, y)
}

func (d *Driver) SetColor(name string, c mgl32.Vec4) error {
	return d.Uniforms().SetColor(name, c)
}

func (d *Driver) SetChannel(name string, c inputs.Channel) error {
	return d.Uniforms().SetChannel(name, c)
}

// Tick runs one frame. An idle driver does nothing.
func (d *Driver) Tick() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case Idle:
		return nil
	case Stopped:
		return ErrStopped
	case Running:
		d.clock.Advance()
	}
	now := d.clock.Seconds()
	dt := now - d.lastTime
	d.lastTime = now

	d.input.Lock()
	frame := inputs.Frame{Time: float32(now)}
	if d.hasPointer {
		p := d.pointer
		frame.Pointer = &p
	}
	down := d.down
	d.input.Unlock()

	w, h := d.target.Size()
	frame.Resolution = mgl32.Vec2{float32(w), float32(h)}
	d.set.WriteFrame(frame)

	if len(d.tweens) > 0 {
		err := d.set.Update(func(wr inputs.Writer) error {
			for _, tw := range d.tweens {
				if err := wr.Set(tw.Name(), inputs.Float(tw.Step(dt, down))); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("press animation: %w", err)
		}
	}

	if err := d.target.Draw(d.set.Snapshot()); err != nil {
		return fmt.Errorf("draw %s frame %d: %w", d.program.Name(), d.clock.Frames(), err)
	}
	return nil
}
