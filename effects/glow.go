package effects

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/palette"
	"github.com/richinsley/goshaderfx/sdf"
	"github.com/richinsley/goshaderfx/shader"
)

// Glow draws a hyperbolic blue glow around the centre, tonemapped so the
// core saturates instead of clipping.
func Glow() Program {
	return &effect{
		name:  "glow",
		decls: []inputs.Decl{inputs.Resolution("resolution")},
		source: shader.Source{
			Requires: []string{shader.Glow},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 pos = fragCoord / resolution - 0.5;
    float glow = getGlow(length(pos), 0.2, 1.0);
    vec3 color = glow * vec3(0.1, 0.4, 1.0);
    return vec4(tonemap(color), 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				pos := normalize(c, res).Sub(mgl32.Vec2{0.5, 0.5})
				g := palette.Glow(glsl.Length(pos), 0.2, 1)
				return glsl.Opaque(palette.Tonemap(palette.GlowTint.Mul(g)))
			}
		},
	}
}

// buttonDecls are shared by both glowing buttons. inset shrinks the button
// inside the surface so the halo has room to draw.
func buttonDecls(extra ...inputs.Decl) []inputs.Decl {
	decls := []inputs.Decl{
		inputs.Slot("button"),
		inputs.Resolution("size"),
		inputs.FloatParam("radius", 0, 0, 500),
		inputs.FloatParam("inset", 0, 0, 500),
		inputs.ColorParam("glowColor", palette.Lightsaber),
	}
	return append(decls, extra...)
}

// GlowingButton shows the button channel inside a rounded rectangle and a
// premultiplied glow outside it that fades to nothing at glowCutoffDistance
// pixels. maxGlowAmount rises to one while the pointer is down.
func GlowingButton() Program {
	return &effect{
		name: "glowing-button",
		decls: buttonDecls(
			inputs.Decl{
				Name:    "maxGlowAmount",
				Kind:    inputs.KindFloat,
				Default: inputs.Float(0),
				Min:     0,
				Max:     1,
				Press:   &inputs.Press{Value: 1, Duration: 500 * time.Millisecond, Curve: "smooth"},
			},
			inputs.FloatParam("glowCutoffDistance", 200, 0, 1000),
		),
		source: shader.Source{
			Requires: []string{shader.SDF},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 rectangle = size / 2.0;
    float d = roundRect(fragCoord - rectangle, rectangle - inset, radius);
    vec4 c = button_eval(fragCoord);
    if (d <= 0.0) {
        return c;
    }
    float fraction = max(1.0 - d / max(glowCutoffDistance, 1e-6), 0.0);
    fraction = pow(fraction, 1.5);
    float glowAmount = maxGlowAmount * fraction * glowColor.a;
    return vec4(glowColor.rgb * glowAmount, glowAmount);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			button := u.Channel("button")
			rect := u.Vec2("size").Mul(0.5)
			box := rect.Sub(glsl.Splat2(u.Float("inset")))
			radius := u.Float("radius")
			maxGlow := u.Float("maxGlowAmount")
			cutoff := u.Float("glowCutoffDistance")
			glow := u.Color("glowColor")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				d := sdf.RoundedRect(c.Sub(rect), box, radius)
				if d <= 0 {
					return button.Eval(c)
				}
				fraction := math32.Max(1-glsl.SafeDiv(d, cutoff), 0)
				fraction = math32.Pow(fraction, 1.5)
				amount := maxGlow * fraction * glow[3]
				return mgl32.Vec4{glow[0] * amount, glow[1] * amount, glow[2] * amount, amount}
			}
		},
	}
}

// GlowingButton2 measures the rounded rectangle in coordinates normalized by
// the button width, so the halo scales with the button, and tonemaps the
// glow.
func GlowingButton2() Program {
	return &effect{
		name:  "glowing-button-2",
		decls: buttonDecls(),
		source: shader.Source{
			Requires: []string{shader.SDF, shader.Glow},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 box = max(size - 2.0 * inset, vec2(1.0));
    float ratio = box.y / box.x;
    vec2 normRectCenter = vec2(0.5, 0.5 * ratio);
    vec2 pos = (fragCoord - inset) / box;
    pos.y = pos.y * ratio;
    pos = pos - normRectCenter;
    float normDistance = roundRect(pos, normRectCenter, ratio / 2.0);
    vec4 color = button_eval(fragCoord);
    if (normDistance < 0.0) {
        return color;
    }
    color = getGlow(normDistance, 0.3, 1.0) * glowColor;
    color = color * smoothstep(-0.5, 0.5, normDistance);
    return tonemap(color);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			button := u.Channel("button")
			inset := u.Float("inset")
			box := surface(u.Vec2("size").Sub(glsl.Splat2(2 * inset)))
			ratio := box[1] / box[0]
			centre := mgl32.Vec2{0.5, 0.5 * ratio}
			glow := u.Color("glowColor")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				pos := mgl32.Vec2{(c[0] - inset) / box[0], (c[1] - inset) / box[1] * ratio}
				nd := sdf.RoundedRect(pos.Sub(centre), centre, ratio/2)
				if nd < 0 {
					return button.Eval(c)
				}
				color := glow.Mul(palette.Glow(nd, 0.3, 1) * glsl.Smoothstep(-0.5, 0.5, nd))
				return palette.Tonemap4(color)
			}
		},
	}
}
