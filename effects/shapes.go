package effects

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/palette"
	"github.com/richinsley/goshaderfx/sdf"
	"github.com/richinsley/goshaderfx/shader"
)

// Shapes draws a white box inset 10% from every edge on black.
func Shapes() Program {
	return &effect{
		name: "shapes",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
		},
		source: shader.Source{
			Requires: []string{shader.SDF},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution;
    uv.y = 1.0 - uv.y;
    return vec4(vec3(boxMask(uv, 0.1)), 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				uv[1] = 1 - uv[1]
				return glsl.Opaque(gray(sdf.Box(uv, 0.1)))
			}
		},
	}
}

// centered maps a pixel coordinate to [-1, 1] on both axes.
func centered(c, res mgl32.Vec2) mgl32.Vec2 {
	uv := normalize(c, res)
	return mgl32.Vec2{uv[0]*2 - 1, uv[1]*2 - 1}
}

// RoundedRect draws rainbow rings of fract(12d) around four corner circles
// 0.2 from the centre.
func RoundedRect() Program {
	return &effect{
		name: "rounded-rect",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
		},
		source: shader.Source{
			Requires: []string{shader.Palette},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution * 2.0 - 1.0;
    float d = length(abs(uv) - 0.2);
    return vec4(vec3(fract(d * 12.0)) * palette(d), 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := centered(c, res)
				d := glsl.Length(glsl.Abs2(uv).Sub(glsl.Splat2(0.2)))
				return glsl.Opaque(palette.Rainbow.At(d).Mul(glsl.Fract(d * 12)))
			}
		},
	}
}

// RectPulse draws rings around a rounded rectangle whose size and ring
// density oscillate with time.
func RectPulse() Program {
	return &effect{
		name: "rect-pulse",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
		},
		source: shader.Source{
			Requires: []string{shader.Palette, shader.SDF},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution * 2.0 - 1.0;
    float oscillate = abs(sin(time * 0.4));
    float d = cornerField(uv, 0.2 * oscillate);
    vec3 color = vec3(fract(d * 20.0 * oscillate));
    return vec4(color * palette(d * oscillate), 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			osc := math32.Abs(math32.Sin(u.Float("time") * 0.4))
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := centered(c, res)
				d := sdf.CornerField(uv, 0.2*osc)
				return glsl.Opaque(palette.Rainbow.At(d * osc).Mul(glsl.Fract(d * 20 * osc)))
			}
		},
	}
}

// Polygon draws an n-gon combined with a circle orbiting the centre. The
// combination cycles through union, intersection and subtraction every three
// seconds; the filled area takes the rainbow palette and the boundary a white
// stroke.
func Polygon() Program {
	return &effect{
		name: "polygon",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
			inputs.FloatParam("sides", 5, 3, 12),
			inputs.FloatParam("size", 0.4, 0.05, 1),
		},
		source: shader.Source{
			Requires: []string{shader.Palette, shader.SDF},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 p = (fragCoord * 2.0 - resolution) / max(min(resolution.x, resolution.y), 1.0);
    float poly = sdPolygon(p, int(sides), size);
    vec2 centre = vec2(0.35 * sin(time * 0.7), 0.0);
    float circle = sdCircle(p, centre, size * 0.6);
    float op = mod(floor(time / 3.0), 3.0);
    float d = op < 1.0 ? opUnion(poly, circle)
            : op < 2.0 ? opIntersect(poly, circle)
            : opSubtract(poly, circle);
    vec3 color = mix(DARK_BLUE, palette(length(p) + time * 0.1), smoothFill(d, 0.01));
    color = mix(color, vec3(1.0), stroke(d, 0.008));
    return vec4(color, 1.0);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			t := u.Float("time")
			sides := int(u.Float("sides"))
			size := u.Float("size")
			centre := mgl32.Vec2{0.35 * math32.Sin(t*0.7), 0}
			radius := size * 0.6
			combine := sdf.Union
			switch op := glsl.Mod(math32.Floor(t/3), 3); {
			case op >= 2:
				combine = sdf.Subtract
			case op >= 1:
				combine = sdf.Intersect
			}
			scale := max(min(res[0], res[1]), 1)
			return func(c mgl32.Vec2) mgl32.Vec4 {
				p := c.Mul(2).Sub(res).Mul(1 / scale)
				d := combine(sdf.Polygon(p, sides, size), sdf.Circle(p, centre, radius))
				color := glsl.Mix3(palette.DarkBlue, palette.Rainbow.At(glsl.Length(p)+t*0.1), sdf.SmoothFill(d, 0.01))
				color = glsl.Mix3(color, mgl32.Vec3{1, 1, 1}, sdf.Stroke(d, 0.008))
				return glsl.Opaque(color)
			}
		},
	}
}
