package driver

import "time"

// DefaultStep is the fixed clock step per frame, in seconds.
const DefaultStep = 0.01

// Clock is the frame clock: monotonically increasing seconds that only move
// when the driver advances them. A fixed clock adds one step per frame; a
// measured clock adds the wall time elapsed since the previous frame. A
// Clock is owned by one driver and is not safe for concurrent use.
type Clock struct {
	step  float64
	scale float64
	now   func() time.Time

	frames  int64
	t       float64
	last    time.Time
	started bool
}

// Fixed returns a clock advancing step seconds per frame. A step of zero or
// less uses DefaultStep.
func Fixed(step float64) *Clock {
	if !(step > 0) {
		step = DefaultStep
	}
	return &Clock{step: step, scale: 1}
}

// Measured returns a clock advancing by the wall time between frames.
func Measured() *Clock {
	return &Clock{scale: 1, now: time.Now}
}

// Measuring reports whether the clock follows wall time.
func (c *Clock) Measuring() bool { return c.now != nil }

// Step is the fixed step, or zero for a measured clock.
func (c *Clock) Step() float64 { return c.step }

// SetScale multiplies measured elapsed time by s. A fixed clock ignores it;
// scale its step instead.
func (c *Clock) SetScale(s float64) {
	if s > 0 {
		c.scale = s
	}
}

// Advance moves the clock on by one frame and returns the new time. The
// first Advance of a measured clock starts it at zero.
func (c *Clock) Advance() float32 {
	c.frames++
	if c.now == nil {
		// multiply rather than accumulate so long runs do not drift
		c.t = float64(c.frames) * c.step
		return float32(c.t)
	}
	n := c.now()
	if c.started {
		if d := n.Sub(c.last); d > 0 {
			c.t += d.Seconds() * c.scale
		}
	}
	c.last = n
	c.started = true
	return float32(c.t)
}

// Now is the time of the latest frame.
func (c *Clock) Now() float32 { return float32(c.t) }

// Seconds is Now at full precision.
func (c *Clock) Seconds() float64 { return c.t }

// Frames counts the Advance calls since the last Reset.
func (c *Clock) Frames() int64 { return c.frames }

// Resume makes a measured clock ignore the wall time since its last
// Advance, so a pause does not show up as a jump.
func (c *Clock) Resume() {
	c.started = false
}

// Reset returns the clock to zero.
func (c *Clock) Reset() {
	c.frames = 0
	c.t = 0
	c.started = false
}
