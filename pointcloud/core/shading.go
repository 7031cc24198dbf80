package core

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Smoothstep follows the GLSL definition, including reversed edges.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := (x - edge0) / (edge1 - edge0)
	t = min(max(t, 0), 1)
	return t * t * (3 - 2*t)
}

// SpriteAlpha is the soft circular mask of a point sprite at point coordinate
// (u, v) in [0,1]x[0,1]. It matches fs_main in particles.wgsl.
func SpriteAlpha(u, v float32) float32 {
	d := float32(math.Hypot(float64(u-0.5), float64(v-0.5)))
	return Smoothstep(0.5, 0.4, d) * 0.9
}

var (
	GradientInner = colorful.Color{R: 1, G: 1, B: 1}
	GradientOuter = mustHex("D9DFDC")
)

func mustHex(h string) colorful.Color {
	c, err := ParseHexColor(h)
	if err != nil {
		panic(err)
	}
	return c
}

// GradientT is the position along the background gradient of pixel (x, y):
// 0 at the centre, 1 at the corners, ellipse shaped like the surface.
func GradientT(x, y, width, height float64) float64 {
	hw, hh := width/2, height/2
	if hw <= 0 || hh <= 0 {
		return 0
	}
	dx := (x - hw) / (hw * math.Sqrt2)
	dy := (y - hh) / (hh * math.Sqrt2)
	return math.Min(math.Hypot(dx, dy), 1)
}

func GradientAt(x, y, width, height float64) colorful.Color {
	return GradientInner.BlendRgb(GradientOuter, GradientT(x, y, width, height))
}
