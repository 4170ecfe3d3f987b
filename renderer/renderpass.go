package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	gst "github.com/richinsley/goshadertranslator"

	goshaderfx "github.com/richinsley/goshaderfx"
	"github.com/richinsley/goshaderfx/effects"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/shader"
	xlate "github.com/richinsley/goshaderfx/translator"
)

// RenderPass is one compiled program. Passes feeding a channel slot render
// into their own Buffer first.
type RenderPass struct {
	ShaderProgram uint32
	Name          string
	decls         []inputs.Decl
	viewportLoc   int32
	locs          map[string]int32
	resLocs       map[string]int32

	// Children maps a channel slot to the pass rendered into it.
	Children map[string]*RenderPass
	// Buffer is the FBO the pass renders into; nil for the scene's root.
	Buffer *Buffer
	// resolutionName is the uniform that sizes Buffer.
	resolutionName string

	// scratch holds channels that have to be rasterized every frame.
	scratch map[string]*texture
}

// createRenderPass compiles p, which must not be a composite.
func (r *Renderer) createRenderPass(p effects.Program) (*RenderPass, error) {
	src, err := effects.FragmentSource(p)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", p.Name(), err)
	}
	code, uniformMap, err := xlate.Translate(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	pass := &RenderPass{
		Name:     p.Name(),
		decls:    p.Uniforms(),
		locs:     make(map[string]int32),
		resLocs:  make(map[string]int32),
		Children: make(map[string]*RenderPass),
		scratch:  make(map[string]*texture),
	}
	pass.ShaderProgram, err = newProgram(shader.QuadVertex, code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program for %s: %w", p.Name(), err)
	}

	warnDropped(p.Name(), pass.decls, uniformMap)
	gl.UseProgram(pass.ShaderProgram)
	pass.viewportLoc = getUniformLocation(uniformMap, pass.ShaderProgram, shader.ViewportUniform)
	for _, d := range pass.decls {
		pass.locs[d.Name] = getUniformLocation(uniformMap, pass.ShaderProgram, d.Name)
		if d.Kind == inputs.KindChannel {
			res := shader.ResolutionUniform(d.Name)
			pass.resLocs[d.Name] = getUniformLocation(uniformMap, pass.ShaderProgram, res)
		}
	}
	gl.UseProgram(0)
	return pass, nil
}

// warnDropped logs every declared uniform missing from the translated
// program and returns their names. Writes to them are skipped.
func warnDropped(program string, decls []inputs.Decl, uniformMap map[string]gst.ShaderVariable) []string {
	var dropped []string
	for _, d := range decls {
		if _, ok := uniformMap[d.Name]; ok {
			continue
		}
		dropped = append(dropped, d.Name)
		goshaderfx.Logger().Warn("uniform dropped by shader compiler", "program", program, "uniform", d.Name)
	}
	return dropped
}

// getUniformLocation looks a uniform up by its name after translation. It
// returns -1 for uniforms the compiler dropped.
func getUniformLocation(uniformMap map[string]gst.ShaderVariable, program uint32, name string) int32 {
	v, ok := uniformMap[name]
	if !ok {
		return -1
	}
	return gl.GetUniformLocation(program, gl.Str(v.MappedName+"\x00"))
}

func (pass *RenderPass) destroy() {
	for _, t := range pass.scratch {
		t.Destroy()
	}
	if pass.Buffer != nil {
		pass.Buffer.Destroy()
	}
	gl.DeleteProgram(pass.ShaderProgram)
}
