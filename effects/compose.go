package effects

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/shader"
)

// Composite is a parent program whose channel slot is fed by a child
// program. Each frame the child is bound with the same snapshot as the
// parent and installed in the slot, so the parent re-samples the child at
// whatever coordinates it likes. Composites nest; cycles are not detected.
type Composite struct {
	parent Program
	slot   string
	child  Program
}

// Compose binds child to the channel slot of parent.
func Compose(parent Program, slot string, child Program) (*Composite, error) {
	var found bool
	for _, d := range parent.Uniforms() {
		if d.Name != slot {
			continue
		}
		if d.Kind != inputs.KindChannel {
			return nil, fmt.Errorf("%w: %s.%s is %s, not a channel", inputs.ErrKindMismatch, parent.Name(), slot, d.Kind)
		}
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: %s has no slot %q", inputs.ErrUndeclared, parent.Name(), slot)
	}
	return &Composite{parent: parent, slot: slot, child: child}, nil
}

func (c *Composite) Name() string {
	return c.parent.Name() + "(" + c.child.Name() + ")"
}

func (c *Composite) Parent() Program { return c.parent }
func (c *Composite) Slot() string    { return c.slot }
func (c *Composite) Child() Program  { return c.child }

// Uniforms is the parent's declarations followed by the child's. Names the
// two share are one uniform.
func (c *Composite) Uniforms() []inputs.Decl {
	return append(c.parent.Uniforms(), c.child.Uniforms()...)
}

// Source is the parent's source; the child compiles separately.
func (c *Composite) Source() shader.Source {
	return c.parent.Source()
}

func (c *Composite) Bind(u inputs.Snapshot) Kernel {
	child := c.child.Bind(u)
	ch := inputs.FuncChannel{Fn: child, Res: c.childResolution(u)}
	return c.parent.Bind(u.With(c.slot, inputs.ChannelValue(ch)))
}

// childResolution is the size the child renders at: the first resolution
// uniform it declares.
func (c *Composite) childResolution(u inputs.Snapshot) mgl32.Vec2 {
	for _, d := range c.child.Uniforms() {
		if d.Role == inputs.RoleResolution {
			return u.Vec2(d.Name)
		}
	}
	return mgl32.Vec2{}
}

// Compositions calls fn for p and every program nested inside it, children
// first.
func Compositions(p Program, fn func(Program)) {
	if c, ok := p.(*Composite); ok {
		Compositions(c.child, fn)
		Compositions(c.parent, fn)
		return
	}
	fn(p)
}
