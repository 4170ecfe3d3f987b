package driver

import (
	"math"
	"testing"
	"time"
)

func TestFixedClock(t *testing.T) {
	c := Fixed(0)
	if got := c.Step(); got != DefaultStep {
		t.Errorf("Fixed(0).Step() = %v, want %v", got, DefaultStep)
	}
	if got := c.Now(); got != 0 {
		t.Errorf("Now() before Advance = %v, want 0", got)
	}
	c.Advance()
	c.Advance()
	if got := c.Advance(); got != float32(0.03) {
		t.Errorf("third Advance() = %v, want 0.03", got)
	}
	if c.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", c.Frames())
	}
}

func TestFixedClockMonotonicAndExact(t *testing.T) {
	c := Fixed(1.0 / 60)
	prev := c.Seconds()
	for i := 0; i < 100000; i++ {
		c.Advance()
		if c.Seconds() <= prev {
			t.Fatalf("frame %d: %v <= %v", i, c.Seconds(), prev)
		}
		prev = c.Seconds()
	}
	if got, want := c.Seconds(), 100000.0/60; math.Abs(got-want) > 1e-9 {
		t.Errorf("after 100000 frames = %v, want %v", got, want)
	}
}

type fakeWall struct{ t time.Time }

func (w *fakeWall) now() time.Time { return w.t }

func (w *fakeWall) sleep(d time.Duration) { w.t = w.t.Add(d) }

func TestMeasuredClock(t *testing.T) {
	wall := &fakeWall{t: time.Unix(1000, 0)}
	c := Measured()
	c.now = wall.now
	if !c.Measuring() {
		t.Fatalf("Measured().Measuring() = false")
	}

	if got := c.Advance(); got != 0 {
		t.Errorf("first Advance() = %v, want 0", got)
	}
	wall.sleep(250 * time.Millisecond)
	if got := c.Advance(); got != 0.25 {
		t.Errorf("Advance() after 250ms = %v, want 0.25", got)
	}

	// a pause of ten seconds is skipped
	wall.sleep(10 * time.Second)
	c.Resume()
	if got := c.Advance(); got != 0.25 {
		t.Errorf("Advance() after Resume = %v, want 0.25", got)
	}
	wall.sleep(500 * time.Millisecond)
	c.SetScale(2)
	if got := c.Advance(); got != 1.25 {
		t.Errorf("scaled Advance() = %v, want 1.25", got)
	}

	// wall time going backwards never moves the clock back
	wall.sleep(-time.Second)
	if got := c.Advance(); got != 1.25 {
		t.Errorf("Advance() after clock step back = %v, want 1.25", got)
	}
}

func TestClockReset(t *testing.T) {
	c := Fixed(0.5)
	c.Advance()
	c.Reset()
	if c.Now() != 0 || c.Frames() != 0 {
		t.Errorf("after Reset Now() = %v, Frames() = %d", c.Now(), c.Frames())
	}
	if got := c.Advance(); got != 0.5 {
		t.Errorf("Advance() after Reset = %v, want 0.5", got)
	}
}
