package renderer

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
)

// Scene holds the GL resources of one program: a pass per program in the
// composition tree and the textures of the image channels it has seen.
type Scene struct {
	Title string
	// Root draws into the renderer's offscreen framebuffer.
	Root *RenderPass
	// passes lists every pass, children before parents.
	passes   []*RenderPass
	textures map[*inputs.ImageChannel]*texture
	empty    *texture
}

// Destroy releases every GL resource of the scene.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	goshaderfx.Logger().Debug("destroying scene", "title", s.Title)
	for _, t := range s.textures {
		t.Destroy()
	}
	if s.empty != nil {
		s.empty.Destroy()
	}
	for _, pass := range s.passes {
		pass.destroy()
	}
}

// LoadScene compiles p and every program composed into it.
func (r *Renderer) LoadScene(p effects.Program) (*Scene, error) {
	scene := &Scene{
		Title:    p.Name(),
		textures: make(map[*inputs.ImageChannel]*texture),
	}
	root, err := r.loadPass(scene, p)
	if err != nil {
		scene.Destroy()
		return nil, err
	}
	scene.Root = root

	scene.empty = newTexture(inputs.DefaultSampler)
	scene.empty.upload(emptyPixel)

	goshaderfx.Logger().Info("loaded scene", "title", scene.Title, "passes", len(scene.passes))
	return scene, nil
}

// emptyPixel backs unbound channels: one transparent texel.
var emptyPixel = image.NewRGBA(image.Rect(0, 0, 1, 1))

func (r *Renderer) loadPass(scene *Scene, p effects.Program) (*RenderPass, error) {
	// Unwrap composites from the outside in. An inner composite binds its
	// slot last, so it wins a slot both name.
	children := make(map[string]effects.Program)
	for {
		c, ok := p.(*effects.Composite)
		if !ok {
			break
		}
		children[c.Slot()] = c.Child()
		p = c.Parent()
	}

	pass, err := r.createRenderPass(p)
	if err != nil {
		return nil, err
	}
	for slot, child := range children {
		cp, err := r.loadPass(scene, child)
		if err != nil {
			pass.destroy()
			return nil, err
		}
		cp.Buffer, err = NewBuffer(r.Size())
		if err != nil {
			pass.destroy()
			return nil, fmt.Errorf("failed to create buffer for %s: %w", child.Name(), err)
		}
		cp.resolutionName = resolutionUniform(child)
		pass.Children[slot] = cp
	}
	scene.passes = append(scene.passes, pass)
	return pass, nil
}

// resolutionUniform is the first resolution uniform p declares.
func resolutionUniform(p effects.Program) string {
	for _, d := range p.Uniforms() {
		if d.Role == inputs.RoleResolution {
			return d.Name
		}
	}
	return ""
}

// drawPass renders pass and its children with the values in u. The root
// pass draws into fbo.
func (r *Renderer) drawPass(s *Scene, pass *RenderPass, u inputs.Snapshot, fbo uint32, width, height int) {
	for _, child := range pass.Children {
		cw, ch := width, height
		if res := u.Vec2(child.resolutionName); res[0] >= 1 && res[1] >= 1 {
			cw, ch = int(res[0]), int(res[1])
		}
		child.Buffer.Resize(cw, ch)
		r.drawPass(s, child, u, child.Buffer.fbo, cw, ch)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.UseProgram(pass.ShaderProgram)
	if pass.viewportLoc != -1 {
		gl.Uniform2f(pass.viewportLoc, float32(width), float32(height))
	}
	units := r.updateUniforms(s, pass, u)

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	unbindChannels(units)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// updateUniforms writes every declared uniform of pass and binds its
// channels. It returns the number of texture units used.
func (r *Renderer) updateUniforms(s *Scene, pass *RenderPass, u inputs.Snapshot) int {
	units := 0
	for _, d := range pass.decls {
		loc := pass.locs[d.Name]
		switch d.Kind {
		case inputs.KindFloat:
			if loc != -1 {
				gl.Uniform1f(loc, u.Float(d.Name))
			}
		case inputs.KindVec2:
			if loc != -1 {
				v := u.Vec2(d.Name)
				gl.Uniform2f(loc, v[0], v[1])
			}
		case inputs.KindColor:
			if loc != -1 {
				c := u.Color(d.Name)
				gl.Uniform4f(loc, c[0], c[1], c[2], c[3])
			}
		case inputs.KindChannel:
			id, res := s.channelTexture(pass, d.Name, u.Channel(d.Name))
			gl.ActiveTexture(gl.TEXTURE0 + uint32(units))
			gl.BindTexture(gl.TEXTURE_2D, id)
			if loc != -1 {
				gl.Uniform1i(loc, int32(units))
			}
			if resLoc := pass.resLocs[d.Name]; resLoc != -1 {
				gl.Uniform2f(resLoc, res[0], res[1])
			}
			units++
		}
	}
	return units
}

// channelTexture resolves the texture bound to a channel slot: a child pass,
// a cached image, the empty texture or a per-frame rasterization.
func (s *Scene) channelTexture(pass *RenderPass, slot string, ch inputs.Channel) (uint32, mgl32.Vec2) {
	if child, ok := pass.Children[slot]; ok {
		return child.Buffer.GetTextureID(), child.Buffer.ChannelRes()
	}
	switch c := ch.(type) {
	case *inputs.ImageChannel:
		t, ok := s.textures[c]
		if !ok {
			t = newImageTexture(c)
			s.textures[c] = t
		}
		return t.id, t.resolution
	case nil:
		return s.empty.id, mgl32.Vec2{}
	}
	if ch == inputs.Transparent {
		return s.empty.id, mgl32.Vec2{}
	}
	t, ok := pass.scratch[slot]
	if !ok {
		t = newTexture(inputs.DefaultSampler)
		pass.scratch[slot] = t
	}
	t.rasterize(ch)
	return t.id, t.resolution
}

func unbindChannels(units int) {
	for i := 0; i < units; i++ {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}
