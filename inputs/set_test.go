package inputs

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(
		Resolution("resolution"),
		Time("time"),
		Pointer("pointer"),
		PointerUV("loupeCenter", mgl32.Vec2{0.15, 0.85}),
		FloatParam("pixellate", 1, 1, 50),
		FloatParam("free", 0, 0, 0),
		ColorParam("glowColor", mgl32.Vec4{1, 0, 0, 1}),
		Slot("image"),
	)
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}
	return s
}

func TestNewSetSeedsDefaults(t *testing.T) {
	snap := newTestSet(t).Snapshot()
	if got := snap.Float("pixellate"); got != 1 {
		t.Errorf("pixellate = %v, want 1", got)
	}
	if got := snap.Vec2("loupeCenter"); got != (mgl32.Vec2{0.15, 0.85}) {
		t.Errorf("loupeCenter = %v, want (0.15, 0.85)", got)
	}
	if got := snap.Color("glowColor"); got != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("glowColor = %v, want red", got)
	}
	if got := snap.Channel("image").Eval(mgl32.Vec2{3, 3}); got != (mgl32.Vec4{}) {
		t.Errorf("unbound channel = %v, want transparent", got)
	}
	for _, name := range []string{"resolution", "time", "pointer", "free"} {
		if !snap.Has(name) {
			t.Errorf("snapshot missing %q", name)
		}
	}
}

func TestSnapshotUndeclaredReadsZero(t *testing.T) {
	snap := newTestSet(t).Snapshot()
	if got := snap.Float("nope"); got != 0 {
		t.Errorf("Float(nope) = %v, want 0", got)
	}
	if got := snap.Vec2("nope"); got != (mgl32.Vec2{}) {
		t.Errorf("Vec2(nope) = %v, want zero", got)
	}
	if snap.Channel("nope") != Transparent {
		t.Errorf("Channel(nope) is not Transparent")
	}
}

func TestSetErrors(t *testing.T) {
	s := newTestSet(t)
	if err := s.SetFloat("nope", 1); !errors.Is(err, ErrUndeclared) {
		t.Errorf("SetFloat(nope) error = %v, want ErrUndeclared", err)
	}
	if err := s.SetVec2("pixellate", 1, 2); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("SetVec2(pixellate) error = %v, want ErrKindMismatch", err)
	}
	if err := s.Reset("nope"); !errors.Is(err, ErrUndeclared) {
		t.Errorf("Reset(nope) error = %v, want ErrUndeclared", err)
	}
}

func TestNewSetKindConflict(t *testing.T) {
	_, err := NewSet(Resolution("size"), FloatParam("size", 0, 0, 0))
	if !errors.Is(err, ErrKindMismatch) {
		t.Errorf("NewSet() error = %v, want ErrKindMismatch", err)
	}
	s, err := NewSet(Resolution("resolution"), Resolution("resolution"))
	if err != nil {
		t.Fatalf("NewSet() with duplicate agreeing decls error = %v", err)
	}
	if n := len(s.Decls()); n != 1 {
		t.Errorf("len(Decls()) = %d, want 1", n)
	}
}

func TestSetFloatClampsToRange(t *testing.T) {
	s := newTestSet(t)
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"pixellate", 0, 1},
		{"pixellate", -5, 1},
		{"pixellate", 20, 20},
		{"pixellate", 80, 50},
		{"free", -5, -5},
	}
	for _, tt := range tests {
		if err := s.SetFloat(tt.name, tt.in); err != nil {
			t.Fatalf("SetFloat(%s, %v) error = %v", tt.name, tt.in, err)
		}
		if got := s.Snapshot().Float(tt.name); got != tt.want {
			t.Errorf("SetFloat(%s, %v) stored %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestResetRestoresDefault(t *testing.T) {
	s := newTestSet(t)
	_ = s.SetFloat("pixellate", 30)
	if err := s.Reset("pixellate"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if got := s.Snapshot().Float("pixellate"); got != 1 {
		t.Errorf("after Reset pixellate = %v, want 1", got)
	}
}

func TestWriteFrameByRole(t *testing.T) {
	s := newTestSet(t)
	s.WriteFrame(Frame{
		Time:       1.5,
		Resolution: mgl32.Vec2{200, 100},
		Pointer:    &mgl32.Vec2{50, 150},
	})
	snap := s.Snapshot()
	if got := snap.Float("time"); got != 1.5 {
		t.Errorf("time = %v, want 1.5", got)
	}
	if got := snap.Vec2("resolution"); got != (mgl32.Vec2{200, 100}) {
		t.Errorf("resolution = %v, want (200, 100)", got)
	}
	if got := snap.Vec2("pointer"); got != (mgl32.Vec2{50, 150}) {
		t.Errorf("pointer = %v, want (50, 150)", got)
	}
	if got := snap.Vec2("loupeCenter"); got != (mgl32.Vec2{0.25, 1}) {
		t.Errorf("loupeCenter = %v, want (0.25, 1)", got)
	}
	if got := snap.Float("pixellate"); got != 1 {
		t.Errorf("param touched by WriteFrame: pixellate = %v", got)
	}
}

func TestWriteFrameWithoutPointer(t *testing.T) {
	s := newTestSet(t)
	s.WriteFrame(Frame{Time: 1, Resolution: mgl32.Vec2{200, 100}})
	snap := s.Snapshot()
	if got := snap.Vec2("loupeCenter"); got != (mgl32.Vec2{0.15, 0.85}) {
		t.Errorf("loupeCenter = %v, want default (0.15, 0.85)", got)
	}
	if got := snap.Float("time"); got != 1 {
		t.Errorf("time = %v, want 1", got)
	}
}

func TestWriteFrameZeroResolutionKeepsPointerUV(t *testing.T) {
	s := newTestSet(t)
	p := mgl32.Vec2{40, 30}
	s.WriteFrame(Frame{Time: 1, Pointer: &p})
	snap := s.Snapshot()
	if got := snap.Vec2("loupeCenter"); got != (mgl32.Vec2{0.15, 0.85}) {
		t.Errorf("loupeCenter = %v, want default (0.15, 0.85)", got)
	}
	if got := snap.Vec2("pointer"); got != p {
		t.Errorf("pointer = %v, want %v", got, p)
	}

	s.WriteFrame(Frame{Time: 2, Resolution: mgl32.Vec2{200, 100}, Pointer: &p})
	s.WriteFrame(Frame{Time: 3, Resolution: mgl32.Vec2{0, 100}, Pointer: &p})
	if got := s.Snapshot().Vec2("loupeCenter"); got != (mgl32.Vec2{0.2, 0.3}) {
		t.Errorf("loupeCenter after zero-width frame = %v, want last (0.2, 0.3)", got)
	}
}

func TestSnapshotIsolated(t *testing.T) {
	s := newTestSet(t)
	snap := s.Snapshot()
	_ = s.SetFloat("pixellate", 10)
	if got := snap.Float("pixellate"); got != 1 {
		t.Errorf("snapshot changed after write: %v", got)
	}
	with := snap.With("pixellate", Float(5))
	if snap.Float("pixellate") != 1 || with.Float("pixellate") != 5 {
		t.Errorf("With mutated the receiver or lost the value")
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	s := newTestSet(t)
	err := s.Update(func(w Writer) error {
		if err := w.Set("time", Float(2)); err != nil {
			return err
		}
		v, _ := w.Get("time")
		return w.Set("pixellate", Float(v.Float()*3))
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := s.Snapshot().Float("pixellate"); got != 6 {
		t.Errorf("pixellate = %v, want 6", got)
	}
}

func TestPointerNeverTorn(t *testing.T) {
	s := newTestSet(t)
	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			v := float32(i % 1000)
			_ = s.SetVec2("pointer", v, v)
		}
	}()
	for i := 0; i < 10000; i++ {
		p := s.Snapshot().Vec2("pointer")
		if p[0] != p[1] {
			close(stop)
			wg.Wait()
			t.Fatalf("torn pointer read %v", p)
		}
	}
	close(stop)
	wg.Wait()
}
