package effects

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/easing"
	"github.com/richinsley/goshaderfx/glsl"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/noise"
	"github.com/richinsley/goshaderfx/sdf"
	"github.com/richinsley/goshaderfx/shader"
)

// Magnifier constants.
const (
	LensAlpha   float32 = -20
	LoupeZoom   float32 = 4
	ShadowBand  float32 = 0.1
	ShadowAlpha float32 = 0.2
	LoupeRadius float32 = 0.2
)

func lensDistortion(r mgl32.Vec2, alpha float32) mgl32.Vec2 {
	return r.Mul(1 - alpha*r.Dot(r))
}

func zoomPoint(uv, point mgl32.Vec2, zoom float32) mgl32.Vec2 {
	return uv.Sub(point).Mul(1 / zoom).Add(point)
}

// Magnifier shows the image channel through a circular loupe centred on
// loupeCenter, in coordinates normalized by size. Inside the loupe the image
// is barrel distorted and zoomed four times; a shadow band of 0.1 fades out
// around it. A loupe of radius zero or less leaves the image untouched.
func Magnifier() Program {
	return &effect{
		name: "magnifier",
		decls: []inputs.Decl{
			inputs.Slot("image"),
			inputs.Resolution("size"),
			inputs.PointerUV("loupeCenter", mgl32.Vec2{0.15, 0.85}),
			{
				Name:    "loupeRadius",
				Kind:    inputs.KindFloat,
				Default: inputs.Float(0),
				Min:     0,
				Max:     0.5,
				Press:   &inputs.Press{Value: LoupeRadius, Duration: 350 * time.Millisecond, Curve: "smooth"},
			},
		},
		source: shader.Source{
			Requires: []string{shader.Lens},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 p = fragCoord / size;
    vec4 color = image_eval(fragCoord);
    float r = loupeRadius;
    if (r <= 0.0) {
        return color;
    }
    float d = distance(loupeCenter, p);
    float shadowRadius = 0.1;
    if (d <= r) {
        vec2 distortion = lens_distortion(p - loupeCenter, -20.0);
        vec2 zoomed = zoom_point(p + distortion, loupeCenter, 4.0);
        color = image_eval(zoomed * size);
    } else if (d <= r + shadowRadius) {
        float progress = mapRange(d - r, 0.0, shadowRadius, 1.0, 0.0);
        progress = easeInQuart(progress);
        float shadowOpacity = mapRange(progress, 1.0, 0.0, 0.2, 0.0);
        color = mix(color, vec4(vec3(0.0), 1.0), vec4(shadowOpacity));
    }
    return color;
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			img := u.Channel("image")
			size := surface(u.Vec2("size"))
			centre := u.Vec2("loupeCenter")
			r := u.Float("loupeRadius")
			if r <= 0 {
				return img.Eval
			}
			return func(c mgl32.Vec2) mgl32.Vec4 {
				p := mgl32.Vec2{c[0] / size[0], c[1] / size[1]}
				d := glsl.Distance(centre, p)
				switch {
				case d <= r:
					distortion := lensDistortion(p.Sub(centre), LensAlpha)
					zoomed := zoomPoint(p.Add(distortion), centre, LoupeZoom)
					return img.Eval(glsl.Mul2(zoomed, size))
				case d <= r+ShadowBand:
					progress := glsl.MapRange(d-r, 0, ShadowBand, 1, 0)
					progress = easing.QuarticIn(progress)
					opacity := glsl.MapRange(progress, 1, 0, ShadowAlpha, 0)
					return glsl.Mix4(img.Eval(c), mgl32.Vec4{0, 0, 0, 1}, opacity)
				}
				return img.Eval(c)
			}
		},
	}
}

// Pixellate samples the image channel at the top-left corner of the
// pixellate-sized block containing each pixel. Blocks smaller than one pixel
// are clamped to one, and a one-pixel block samples the pixel itself.
func Pixellate() Program {
	return &effect{
		name: "pixellate",
		decls: []inputs.Decl{
			inputs.Slot("image"),
			inputs.Resolution("resolution"),
			inputs.FloatParam("pixellate", 1, 1, 50),
		},
		source: shader.Source{Body: `vec4 shade(vec2 fragCoord) {
    float block = max(pixellate, 1.0);
    if (block == 1.0) {
        return image_eval(fragCoord);
    }
    return image_eval(floor(fragCoord / block) * block);
}
`},
		bind: func(u inputs.Snapshot) Kernel {
			img := u.Channel("image")
			block := PixelBlock(u.Float("pixellate"))
			if block == 1 {
				return img.Eval
			}
			return func(c mgl32.Vec2) mgl32.Vec4 {
				return img.Eval(glsl.Floor2(c.Mul(1 / block)).Mul(block))
			}
		},
	}
}

// PixelBlock is the block size Pixellate uses for a pixellate value.
func PixelBlock(pixellate float32) float32 {
	if !(pixellate >= 1) {
		return 1
	}
	return pixellate
}

var glassTint = mgl32.Vec4{0.3, 0.3, 0.3, 1}

// FrostedGlass lays a grey grain texture at half strength over the
// composable channel inside a rounded rectangle filling rectangle. A blur
// above zero first averages a 3x3 neighbourhood spaced blur pixels apart.
func FrostedGlass() Program {
	return &effect{
		name: "frosted-glass",
		decls: []inputs.Decl{
			inputs.Slot("composable"),
			inputs.Resolution("rectangle"),
			inputs.FloatParam("radius", 0, 0, 500),
			inputs.FloatParam("blur", 0, 0, 16),
		},
		source: shader.Source{
			Requires: []string{shader.SDF},
			Body: `vec4 avgColor(vec2 coord) {
    vec4 color = vec4(0.0);
    for (int x = -1; x < 2; x++) {
        for (int y = -1; y < 2; y++) {
            color += composable_eval(coord + vec2(x, y) * blur);
        }
    }
    return color / 9.0;
}

vec4 shade(vec2 fragCoord) {
    vec2 rectCenter = rectangle / 2.0;
    float distanceFromEdge = roundRect(fragCoord - rectCenter, rectCenter, radius);
    if (distanceFromEdge > 0.0) {
        return composable_eval(fragCoord);
    }
    vec4 color = blur > 0.0 ? avgColor(fragCoord) : composable_eval(fragCoord);
    float rand = random(fragCoord / max(rectangle, vec2(1.0)));
    vec4 tint = mix(vec4(0.3, 0.3, 0.3, 1.0), vec4(vec3(rand), 1.0), 0.4);
    return mix(color, tint, 0.5);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			comp := u.Channel("composable")
			rect := u.Vec2("rectangle")
			centre := rect.Mul(0.5)
			norm := surface(rect)
			radius := u.Float("radius")
			blur := u.Float("blur")
			return func(c mgl32.Vec2) mgl32.Vec4 {
				if sdf.RoundedRect(c.Sub(centre), centre, radius) > 0 {
					return comp.Eval(c)
				}
				var color mgl32.Vec4
				if blur > 0 {
					for x := -1; x <= 1; x++ {
						for y := -1; y <= 1; y++ {
							color = color.Add(comp.Eval(c.Add(mgl32.Vec2{float32(x), float32(y)}.Mul(blur))))
						}
					}
					color = color.Mul(1.0 / 9)
				} else {
					color = comp.Eval(c)
				}
				rnd := noise.Random(mgl32.Vec2{c[0] / norm[0], c[1] / norm[1]})
				tint := glsl.Mix4(glassTint, mgl32.Vec4{rnd, rnd, rnd, 1}, 0.4)
				return glsl.Mix4(color, tint, 0.5)
			}
		},
	}
}

// Chromatic splits the red and blue channels of the composable input along
// the direction from the surface centre, amount pixels each way. The centre
// pixel has no direction and is left as is.
func Chromatic() Program {
	return &effect{
		name: "chromatic",
		decls: []inputs.Decl{
			inputs.Slot("composable"),
			inputs.Resolution("resolution"),
			inputs.FloatParam("amount", 0, 0, 64),
		},
		source: shader.Source{
			Requires: []string{shader.Util},
			Body: `vec4 shade(vec2 fragCoord) {
    vec2 dir = safeNormalize(fragCoord - resolution / 2.0) * amount;
    vec4 g = composable_eval(fragCoord);
    float r = composable_eval(fragCoord + dir).r;
    float b = composable_eval(fragCoord - dir).b;
    return vec4(r, g.g, b, g.a);
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			comp := u.Channel("composable")
			centre := u.Vec2("resolution").Mul(0.5)
			amount := u.Float("amount")
			if amount == 0 {
				return comp.Eval
			}
			return func(c mgl32.Vec2) mgl32.Vec4 {
				dir := glsl.SafeNormalize2(c.Sub(centre)).Mul(amount)
				g := comp.Eval(c)
				r := comp.Eval(c.Add(dir))[0]
				b := comp.Eval(c.Sub(dir))[2]
				return mgl32.Vec4{r, g[1], b, g[3]}
			}
		},
	}
}
