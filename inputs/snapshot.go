package inputs

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is an immutable copy of a Set taken once per frame. Reading a name
// that was never declared yields the zero value, the way an unbound uniform
// reads on a GPU.
type Snapshot struct {
	values map[string]Value
}

// SnapshotOf builds a snapshot from explicit values, for hosts and tests that
// do not need a Set.
func SnapshotOf(values map[string]Value) Snapshot {
	cp := make(map[string]Value, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Snapshot{values: cp}
}

// Has reports whether name is present.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s Snapshot) Value(name string) Value {
	return s.values[name]
}

func (s Snapshot) Float(name string) float32 {
	return s.values[name].Float()
}

func (s Snapshot) Vec2(name string) mgl32.Vec2 {
	return s.values[name].Vec2()
}

func (s Snapshot) Color(name string) mgl32.Vec4 {
	return s.values[name].Color()
}

// Channel returns the channel bound to name, or Transparent.
func (s Snapshot) Channel(name string) Channel {
	v, ok := s.values[name]
	if !ok || v.Channel == nil {
		return Transparent
	}
	return v.Channel
}

// With returns a copy of the snapshot with name set to v. The receiver is
// left unchanged.
func (s Snapshot) With(name string, v Value) Snapshot {
	cp := make(map[string]Value, len(s.values)+1)
	for k, old := range s.values {
		cp[k] = old
	}
	cp[name] = v
	return Snapshot{values: cp}
}

// Names returns the names present in the snapshot, unordered.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	return names
}
