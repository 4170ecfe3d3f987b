package noise

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func grid(fn func(st mgl32.Vec2)) {
	for y := -64; y <= 64; y++ {
		for x := -64; x <= 64; x++ {
			fn(mgl32.Vec2{float32(x) / 16, float32(y) / 16})
		}
	}
}

func TestHashesDeterministic(t *testing.T) {
	hashes := map[string]func(mgl32.Vec2) float32{
		"Random": Random,
		"Grain":  Grain,
		"Rnd":    func(st mgl32.Vec2) float32 { return Rnd(st[0]) },
	}
	for name, h := range hashes {
		grid(func(st mgl32.Vec2) {
			if a, b := h(st), h(st); a != b {
				t.Fatalf("%s(%v) = %v then %v", name, st, a, b)
			}
		})
	}
}

func TestHashesInUnitRange(t *testing.T) {
	grid(func(st mgl32.Vec2) {
		for _, v := range []float32{Random(st), Grain(st), Rnd(st[0] + 3)} {
			if v < 0 || v > 1 {
				t.Fatalf("hash at %v = %v, outside [0, 1]", st, v)
			}
		}
	})
}

func TestRandomSpread(t *testing.T) {
	var below, total int
	grid(func(st mgl32.Vec2) {
		total++
		if Random(st) < 0.5 {
			below++
		}
	})
	ratio := float64(below) / float64(total)
	if ratio < 0.4 || ratio > 0.6 {
		t.Errorf("fraction of Random below 0.5 = %v, want about 0.5", ratio)
	}
}

func TestRandomIsHash2(t *testing.T) {
	st := mgl32.Vec2{0.25, 0.75}
	if got, want := Random(st), Hash2(st, RandomKey, RandomScale); got != want {
		t.Errorf("Random(%v) = %v, want %v", st, got, want)
	}
	if Random(st) == Grain(st) {
		t.Errorf("Random and Grain agree at %v", st)
	}
}
