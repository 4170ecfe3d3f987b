package effects

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/glsl"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/noise"
	"github.com/richinsley/goshaderfx/palette"
	"github.com/richinsley/goshaderfx/shader"
)

// Basic paints the normalized coordinate: red grows left to right, green top
// to bottom.
func Basic() Program {
	return &effect{
		name:  "basic",
		decls: []inputs.Decl{inputs.Resolution("resolution")},
		source: shader.Source{Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution;
    return vec4(uv.x, uv.y, 1.0, 1.0);
}
`},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				return mgl32.Vec4{uv[0], uv[1], 1, 1}
			}
		},
	}
}

// Pulse fills the surface with red at abs(sin(iTime)).
func Pulse() Program {
	return &effect{
		name: "pulse",
		decls: []inputs.Decl{
			inputs.Resolution("iResolution"),
			inputs.Time("iTime"),
		},
		source: shader.Source{Body: `vec4 shade(vec2 fragCoord) {
    return vec4(abs(sin(iTime)), 0.0, 0.0, 1.0);
}
`},
		bind: func(u inputs.Snapshot) Kernel {
			c := mgl32.Vec4{math32.Abs(math32.Sin(u.Float("iTime"))), 0, 0, 1}
			return func(mgl32.Vec2) mgl32.Vec4 { return c }
		},
	}
}

// Gradient mixes colorA into colorB along x, with the blend factor warped by
// curve, then mixes grain amount of noise over it.
func Gradient(curve easing.Curve) Program {
	return &effect{
		name: "gradient",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.ColorParam("colorA", glsl.Opaque(palette.Lavender)),
			inputs.ColorParam("colorB", glsl.Opaque(palette.DarkBlue)),
			inputs.FloatParam("grain", 0, 0, 1),
		},
		source: shader.Source{
			Requires: []string{shader.Util},
			Helpers:  curve.GLSL,
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution;
    vec3 color = mix(colorA.rgb, colorB.rgb, ease(uv.x));
    color = mix(color, vec3(random(uv)), grain);
    return vec4(color, 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			a := glsl.RGB(u.Color("colorA"))
			b := glsl.RGB(u.Color("colorB"))
			grain := u.Float("grain")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				color := glsl.Mix3(a, b, curve.Eval(uv[0]))
				if grain != 0 {
					color = glsl.Mix3(color, gray(noise.Random(uv)), grain)
				}
				return glsl.Opaque(color)
			}
		},
	}
}

// Grainy blends lavender into dark blue by the square of x perturbed by
// chaos amount of grain.
func Grainy() Program {
	return &effect{
		name: "grainy",
		decls: []inputs.Decl{
			inputs.Resolution("iResolution"),
			inputs.FloatParam("chaos", 0, 0, 1),
		},
		source: shader.Source{
			Requires: []string{shader.Palette},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / iResolution;
    float noiseX = uv.x + grainRandom(uv) * chaos;
    vec3 pct = vec3(pow(noiseX, 2.0));
    return vec4(mix(LAVENDER, DARK_BLUE, pct), 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("iResolution")
			chaos := u.Float("chaos")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				x := uv[0] + noise.Grain(uv)*chaos
				return glsl.Opaque(glsl.Mix3(palette.Lavender, palette.DarkBlue, x*x))
			}
		},
	}
}

// NoisyGradient blends color1 into color2 with a smoothstep on red and blue
// and a quarter sine on green, then mixes in 20% noise.
func NoisyGradient() Program {
	return &effect{
		name: "noisy-gradient",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
			inputs.ColorParam("color1", glsl.Opaque(palette.Lavender)),
			inputs.ColorParam("color2", glsl.Opaque(palette.DarkBlue)),
		},
		source: shader.Source{
			Requires: []string{shader.Util},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution;
    vec3 pct = vec3(smoothstep(0.0, 1.0, uv.x));
    pct.g = sin(0.5 * PI * uv.x);
    vec3 color = mix(color1.rgb, color2.rgb, pct);
    color = mix(color, vec3(random(uv)), 0.2);
    return vec4(color, 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			a := glsl.RGB(u.Color("color1"))
			b := glsl.RGB(u.Color("color2"))
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				s := glsl.Smoothstep(0, 1, uv[0])
				pct := mgl32.Vec3{s, math32.Sin(0.5 * glsl.Pi * uv[0]), s}
				color := glsl.Mix3V(a, b, pct)
				color = glsl.Mix3(color, gray(noise.Random(uv)), 0.2)
				return glsl.Opaque(color)
			}
		},
	}
}

// plot is one for st.y within 0.01 of pct, fading out on both sides.
func plot(st mgl32.Vec2, pct float32) float32 {
	return glsl.Smoothstep(pct-0.01, pct, st[1]) - glsl.Smoothstep(pct, pct+0.01, st[1])
}

// Rainbow draws five arcs 1 + 0.05k - sin(pi x) over dark blue.
func Rainbow() Program {
	return &effect{
		name:  "rainbow",
		decls: []inputs.Decl{inputs.Resolution("iResolution")},
		source: shader.Source{
			Requires: []string{shader.Palette},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / iResolution;
    vec3 color = DARK_BLUE;
    float arc = sin(PI * uv.x);
    color = mix(color, RED, plot(uv, 1.00 - arc));
    color = mix(color, ORANGE, plot(uv, 1.05 - arc));
    color = mix(color, GREEN, plot(uv, 1.10 - arc));
    color = mix(color, BLUE, plot(uv, 1.15 - arc));
    color = mix(color, PURPLE, plot(uv, 1.20 - arc));
    return vec4(color, 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("iResolution")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				arc := math32.Sin(glsl.Pi * uv[0])
				color := palette.DarkBlue
				for k, stripe := range palette.Stripes {
					on := plot(uv, 1+0.05*float32(k)-arc)
					color = glsl.Mix3(color, stripe, on)
				}
				return glsl.Opaque(color)
			}
		},
	}
}

// Flag draws the five rainbow colors as vertical stripes of equal width.
func Flag() Program {
	return &effect{
		name:  "flag",
		decls: []inputs.Decl{inputs.Resolution("iResolution")},
		source: shader.Source{
			Requires: []string{shader.Palette},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / iResolution;
    vec3 color = DARK_BLUE;
    float w = 1.0 / 5.0;
    color = mix(color, RED, step(uv.x, w));
    color = mix(color, ORANGE, step(uv.x, w * 2.0) - step(uv.x, w));
    color = mix(color, GREEN, step(uv.x, w * 3.0) - step(uv.x, w * 2.0));
    color = mix(color, BLUE, step(uv.x, w * 4.0) - step(uv.x, w * 3.0));
    color = mix(color, PURPLE, step(uv.x, w * 5.0) - step(uv.x, w * 4.0));
    return vec4(color, 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("iResolution")
			const w = 1.0 / 5.0
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				color := palette.DarkBlue
				prev := float32(0)
				for k, stripe := range palette.Stripes {
					cur := glsl.Step(uv[0], w*float32(k+1))
					color = glsl.Mix3(color, stripe, cur-prev)
					prev = cur
				}
				return glsl.Opaque(color)
			}
		},
	}
}
