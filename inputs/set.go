package inputs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUndeclared is returned when writing a uniform no declaration names.
	ErrUndeclared = errors.New("undeclared uniform")
	// ErrKindMismatch is returned when a value or a redeclaration disagrees
	// with the declared kind.
	ErrKindMismatch = errors.New("uniform kind mismatch")
)

// Set is the mutable uniform set of one program. Every declared uniform is
// present from construction on, holding its declared default. Writers may run
// on any goroutine; each write and each Snapshot is atomic with respect to
// the others, so a multi-component value is never observed half written.
type Set struct {
	mu     sync.RWMutex
	order  []string
	decls  map[string]Decl
	values map[string]Value
}

// NewSet builds a set seeded from decls. A name declared twice must agree on
// its kind; the first declaration wins.
func NewSet(decls ...Decl) (*Set, error) {
	s := &Set{
		decls:  make(map[string]Decl, len(decls)),
		values: make(map[string]Value, len(decls)),
	}
	for _, d := range decls {
		if err := s.declare(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Set) declare(d Decl) error {
	if prev, ok := s.decls[d.Name]; ok {
		if prev.Kind != d.Kind {
			return fmt.Errorf("%w: %q declared as %s and %s", ErrKindMismatch, d.Name, prev.Kind, d.Kind)
		}
		return nil
	}
	if d.Default.Kind != d.Kind {
		return fmt.Errorf("%w: %q default is %s, declared %s", ErrKindMismatch, d.Name, d.Default.Kind, d.Kind)
	}
	if d.Kind == KindChannel && d.Default.Channel == nil {
		d.Default.Channel = Transparent
	}
	s.order = append(s.order, d.Name)
	s.decls[d.Name] = d
	s.values[d.Name] = d.Default
	return nil
}

// Decls returns the declarations in declaration order.
func (s *Set) Decls() []Decl {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Decl, len(s.order))
	for i, name := range s.order {
		out[i] = s.decls[name]
	}
	return out
}

// Decl looks up the declaration of name.
func (s *Set) Decl(name string) (Decl, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.decls[name]
	return d, ok
}

// Set writes v to name. Floats are clamped to the declared control range.
func (s *Set) Set(name string, v Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(name, v)
}

func (s *Set) setLocked(name string, v Value) error {
	d, ok := s.decls[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUndeclared, name)
	}
	if d.Kind != v.Kind {
		return fmt.Errorf("%w: %q is %s, got %s", ErrKindMismatch, name, d.Kind, v.Kind)
	}
	switch v.Kind {
	case KindFloat:
		v.V[0] = d.Clamp(v.V[0])
	case KindChannel:
		if v.Channel == nil {
			v.Channel = Transparent
		}
	}
	s.values[name] = v
	return nil
}

func (s *Set) SetFloat(name string, f float32) error {
	return s.Set(name, Float(f))
}

func (s *Set) SetVec2(name string, x, y float32) error {
	return s.Set(name, Vec2(x, y))
}

func (s *Set) SetColor(name string, c mgl32.Vec4) error {
	return s.Set(name, Color(c))
}

func (s *Set) SetChannel(name string, c Channel) error {
	return s.Set(name, ChannelValue(c))
}

// Reset restores name to its declared default.
func (s *Set) Reset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.decls[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUndeclared, name)
	}
	s.values[name] = d.Default
	return nil
}

// Get returns the current value of name.
func (s *Set) Get(name string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Frame is what a host feeds the set once per frame.
type Frame struct {
	Time       float32
	Resolution mgl32.Vec2
	// Pointer is nil until the host has seen a pointer. Pointer uniforms keep
	// their current value, the declared default at first, while it is nil.
	Pointer *mgl32.Vec2
}

// WriteFrame stores the frame inputs into every uniform whose role asks for
// them, under a single lock.
func (s *Set) WriteFrame(f Frame) {
	var px, uv mgl32.Vec2
	var hasUV bool
	if f.Pointer != nil {
		px = *f.Pointer
		if f.Resolution[0] > 0 && f.Resolution[1] > 0 {
			hasUV = true
			uv = mgl32.Vec2{
				mgl32.Clamp(px[0]/f.Resolution[0], 0, 1),
				mgl32.Clamp(px[1]/f.Resolution[1], 0, 1),
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.order {
		switch s.decls[name].Role {
		case RoleTime:
			s.values[name] = Float(f.Time)
		case RoleResolution:
			s.values[name] = Vec2(f.Resolution[0], f.Resolution[1])
		case RolePointer:
			if f.Pointer != nil {
				s.values[name] = Vec2(px[0], px[1])
			}
		case RolePointerUV:
			// Without a positive resolution the pointer has no normalized position.
			if hasUV {
				s.values[name] = Vec2(uv[0], uv[1])
			}
		}
	}
}

// Update runs fn with exclusive access to the set. Writes made through the
// Writer become visible together.
func (s *Set) Update(fn func(w Writer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(writer{s})
}

// Writer writes values inside Update.
type Writer interface {
	Set(name string, v Value) error
	Get(name string) (Value, bool)
}

type writer struct{ s *Set }

func (w writer) Set(name string, v Value) error { return w.s.setLocked(name, v) }

func (w writer) Get(name string) (Value, bool) {
	v, ok := w.s.values[name]
	return v, ok
}

// Snapshot copies the current values into an immutable view.
func (s *Set) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return Snapshot{values: values}
}
