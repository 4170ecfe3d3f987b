package effects

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/richinsley/goshaderfx/glsl"
	"github.com/richinsley/goshaderfx/inputs"
	"github.com/richinsley/goshaderfx/noise"
	"github.com/richinsley/goshaderfx/palette"
	"github.com/richinsley/goshaderfx/shader"
)

// SnowParticles is the number of flakes in the snow effect.
const SnowParticles = 100

type flake struct {
	speed  float32
	x      float32
	sinJ   float32
	radius float32
}

// flakes holds the time-independent part of every particle.
var flakes = func() [SnowParticles]flake {
	var out [SnowParticles]flake
	for i := range out {
		j := float32(i)
		speed := 0.3 + noise.Rnd(math32.Cos(j))*(0.7+0.5*math32.Cos(j/(200*0.25)))
		out[i] = flake{
			speed:  speed,
			x:      noise.Rnd(j),
			sinJ:   math32.Sin(j),
			radius: 0.001 + speed*0.004,
		}
	}
	return out
}()

// drawCircle is one at centre fading to zero at radius.
func drawCircle(p, centre mgl32.Vec2, radius float32) float32 {
	return 1 - glsl.Smoothstep(0, radius, glsl.Distance(p, centre))
}

// Snow accumulates a hundred soft flakes over a pale sky. Each flake's speed
// and column come from hashing its index; its height wraps every 0.65.
func Snow() Program {
	return &effect{
		name: "snow",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
		},
		source: shader.Source{
			Requires: []string{shader.Util},
			Body: `float drawCircle(vec2 p, vec2 center, float radius) {
    return 1.0 - smoothstep(0.0, radius, length(p - center));
}

vec4 shade(vec2 fragCoord) {
    vec2 uv = fragCoord / resolution;
    uv.y = 1.0 - uv.y;
    vec4 color = vec4(0.808, 0.89, 0.918, 1.0);
    for (int i = 0; i < 100; i++) {
        float j = float(i);
        float speed = 0.3 + rnd(cos(j)) * (0.7 + 0.5 * cos(j / (200.0 * 0.25)));
        vec2 center = vec2((0.25 - uv.y) * 0.2 + rnd(j) + 0.1 * cos(time + sin(j)),
                           mod(sin(j) - speed * (time * 1.5 * (0.1 + 0.2)), 0.65));
        color += vec4(0.29 * drawCircle(uv, center, 0.001 + speed * 0.004));
    }
    return color;
}
`,
		},
		bind: func(u inputs.Snapshot) Kernel {
			res := u.Vec2("resolution")
			t := u.Float("time")
			fall := t * 1.5 * (0.1 + 0.2)
			var sway [SnowParticles]float32
			var height [SnowParticles]float32
			for i, f := range flakes {
				sway[i] = f.x + 0.1*math32.Cos(t+f.sinJ)
				height[i] = glsl.Mod(f.sinJ-f.speed*fall, 0.65)
			}
			return func(c mgl32.Vec2) mgl32.Vec4 {
				uv := normalize(c, res)
				uv[1] = 1 - uv[1]
				drift := (0.25 - uv[1]) * 0.2
				var acc float32
				for i := range flakes {
					centre := mgl32.Vec2{drift + sway[i], height[i]}
					acc += 0.29 * drawCircle(uv, centre, flakes[i].radius)
				}
				return palette.Snow.Add(mgl32.Vec4{acc, acc, acc, acc})
			}
		},
	}
}

// Blizzard layers six sets of twelve cell grids of sparse flakes that sway
// and fall at per-cell rates over a night sky.
func Blizzard() Program {
	return &effect{
		name: "blizzard",
		decls: []inputs.Decl{
			inputs.Resolution("resolution"),
			inputs.Time("time"),
		},
		source: shader.Source{Body: `vec4 shade(vec2 fragCoord) {
    float snow = 0.0;
    float ratio = resolution.y / resolution.x;
    float random = fract(sin(dot(fragCoord.xy, vec2(12.9898, 78.233))) * 43758.5453);
    for (int k = 0; k < 6; k++) {
        // cell layer zero divides by zero and never contributes
        for (int i = 1; i < 12; i++) {
            float cellSize = 2.0 + (float(i) * 3.0);
            float downSpeed = 0.3 + (sin(time * 0.4 + float(k + i * 20)) + 1.0) * 0.00008;
            vec2 uv = vec2(fragCoord.x / resolution.x, (1.0 - fragCoord.y / resolution.y) * ratio)
                + vec2(0.01 * sin((time + float(k * 6185)) * 0.6 + float(i)) * (5.0 / float(i)),
                       downSpeed * (time + float(k * 1352)) * (1.0 / float(i)));
            vec2 uvStep = ceil(uv * cellSize - vec2(0.5, 0.5)) / cellSize;
            float x = fract(sin(dot(uvStep.xy, vec2(12.9898 + float(k) * 12.0, 78.233 + float(k) * 315.156))) * 43758.5453 + float(k) * 12.0) - 0.5;
            float y = fract(sin(dot(uvStep.xy, vec2(62.2364 + float(k) * 23.0, 94.674 + float(k) * 95.0))) * 62159.8432 + float(k) * 12.0) - 0.5;
            float randomMagnitude1 = sin(time * 2.5) * 0.7 / cellSize;
            float randomMagnitude2 = cos(time * 2.5) * 0.7 / cellSize;
            float d = 5.0 * distance(uvStep.xy + vec2(x * sin(y), y) * randomMagnitude1 + vec2(y, x) * randomMagnitude2, uv.xy);
            float omiVal = fract(sin(dot(uvStep.xy, vec2(32.4691, 94.615))) * 31572.1684);
            if (omiVal < 0.08) {
                snow += (x + 1.0) * 0.4 * clamp(1.9 - d * (15.0 + (x * 6.3)) * (cellSize / 1.4), 0.0, 1.0);
            }
        }
    }
    return vec4(snow) + vec4(0.0784, 0.1294, 0.2392, 1.0) + random * 0.01;
}
`},
		bind: func(u inputs.Snapshot) Kernel {
			res := surface(u.Vec2("resolution"))
			t := u.Float("time")
			ratio := res[1] / res[0]
			m1 := math32.Sin(t*2.5) * 0.7
			m2 := math32.Cos(t*2.5) * 0.7
			return func(c mgl32.Vec2) mgl32.Vec4 {
				var snow float32
				random := noise.Hash2(c, noise.RandomKey, noise.RndScale)
				base := mgl32.Vec2{c[0] / res[0], (1 - c[1]/res[1]) * ratio}
				for k := 0; k < 6; k++ {
					fk := float32(k)
					kx := mgl32.Vec2{12.9898 + fk*12, 78.233 + fk*315.156}
					ky := mgl32.Vec2{62.2364 + fk*23, 94.674 + fk*95}
					for i := 1; i < 12; i++ {
						fi := float32(i)
						cell := 2 + fi*3
						down := 0.3 + (math32.Sin(t*0.4+float32(k+i*20))+1)*0.00008
						uv := base.Add(mgl32.Vec2{
							0.01 * math32.Sin((t+float32(k*6185))*0.6+fi) * (5 / fi),
							down * (t + float32(k*1352)) * (1 / fi),
						})
						step := mgl32.Vec2{
							math32.Ceil(uv[0]*cell-0.5) / cell,
							math32.Ceil(uv[1]*cell-0.5) / cell,
						}
						if glsl.Fract(math32.Sin(step.Dot(mgl32.Vec2{32.4691, 94.615}))*31572.1684) >= 0.08 {
							continue
						}
						x := glsl.Fract(math32.Sin(step.Dot(kx))*43758.5453+fk*12) - 0.5
						y := glsl.Fract(math32.Sin(step.Dot(ky))*62159.8432+fk*12) - 0.5
						jitter := mgl32.Vec2{x * math32.Sin(y), y}.Mul(m1 / cell).Add(mgl32.Vec2{y, x}.Mul(m2 / cell))
						d := 5 * glsl.Distance(step.Add(jitter), uv)
						snow += (x + 1) * 0.4 * glsl.Clamp(1.9-d*(15+x*6.3)*(cell/1.4), 0, 1)
					}
				}
				return palette.Night.Add(mgl32.Vec4{snow, snow, snow, snow}).Add(gray4(random * 0.01))
			}
		},
	}
}

func gray4(v float32) mgl32.Vec4 {
	return mgl32.Vec4{v, v, v, v}
}
