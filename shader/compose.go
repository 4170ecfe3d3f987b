// Package shader composes GLSL ES 3.00 fragment programs for the effects. A
// program is assembled at build time from a preamble generated from the
// uniform declarations, the library fragments it requires, an optional
// program-specific helper block, the body defining
//
//	vec4 shade(vec2 fragCoord)
//
// and a main wrapper that hands shade top-left pixel coordinates.
package shader

import (
	"fmt"
	"strings"

	"github.com/richinsley/goshaderfx/inputs"
)

// ViewportUniform carries the render target size to the main wrapper.
const ViewportUniform = "fx_Viewport"

// Source is the GLSL side of an effect.
type Source struct {
	Requires []string
	Helpers  string
	Body     string
}

// ResolutionUniform is the name of the vec2 a channel's size is bound to.
func ResolutionUniform(channel string) string {
	return channel + "_Resolution"
}

// GeneratePreamble declares every uniform in decls, in order. A channel
// becomes a sampler2D, a vec2 holding its size and a <name>_eval helper that
// samples it at a top-left pixel coordinate. Channel textures are stored
// bottom row first.
func GeneratePreamble(decls []inputs.Decl) string {
	var b strings.Builder
	b.WriteString(`#version 300 es
precision highp float;
precision highp int;

`)
	fmt.Fprintf(&b, "uniform vec2 %s;\n", ViewportUniform)
	for _, d := range decls {
		fmt.Fprintf(&b, "uniform %s %s;\n", d.Kind.GLSLType(), d.Name)
		if d.Kind == inputs.KindChannel {
			res := ResolutionUniform(d.Name)
			fmt.Fprintf(&b, "uniform vec2 %s;\n", res)
			fmt.Fprintf(&b, "vec4 %s_eval(vec2 c) {\n", d.Name)
			fmt.Fprintf(&b, "    vec2 r = max(%s, vec2(1.0));\n", res)
			fmt.Fprintf(&b, "    return texture(%s, vec2(c.x, r.y - c.y) / r);\n", d.Name)
			b.WriteString("}\n")
		}
	}
	b.WriteString("\nout vec4 fx_FragColor;\n\n")
	return b.String()
}

// GetMain returns the entry point wrapping shade.
func GetMain() string {
	return fmt.Sprintf(`
void main(void)
{
    vec2 fragCoord = vec2(gl_FragCoord.x, %s.y - gl_FragCoord.y);
    fx_FragColor = shade(fragCoord);
}
`, ViewportUniform)
}

// resolve expands requirements into fragmentOrder order.
func resolve(requires []string) ([]string, error) {
	want := make(map[string]bool)
	var visit func(name string) error
	visit = func(name string) error {
		f, ok := fragments[name]
		if !ok {
			return fmt.Errorf("unknown shader fragment %q", name)
		}
		if want[name] {
			return nil
		}
		want[name] = true
		for _, dep := range f.requires {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range requires {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	out := make([]string, 0, len(want))
	for _, name := range fragmentOrder {
		if want[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

// GetFragmentShader combines preamble + library fragments + helpers + body +
// wrapper.
func GetFragmentShader(decls []inputs.Decl, src Source) (string, error) {
	if !strings.Contains(src.Body, "shade(") {
		return "", fmt.Errorf("shader body does not define shade()")
	}
	names, err := resolve(src.Requires)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(GeneratePreamble(decls))
	for _, name := range names {
		fmt.Fprintf(&b, "// %s\n", name)
		b.WriteString(fragments[name].code)
		b.WriteString("\n")
	}
	if src.Helpers != "" {
		b.WriteString(src.Helpers)
		b.WriteString("\n")
	}
	b.WriteString(src.Body)
	b.WriteString(GetMain())
	return b.String(), nil
}
