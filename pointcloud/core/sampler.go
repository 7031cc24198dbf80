package core

import (
	"image"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultKeepProbability = 0.5

// AlphaPixels lists every pixel with non-zero alpha, x outer and y inner.
func AlphaPixels(b *Bitmap) []image.Point {
	var pts []image.Point
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			if b.Alpha(x, y) > 0 {
				pts = append(pts, image.Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// SamplePositions keeps each inked pixel with probability keep and maps the
// survivors to positions centred on the bitmap with y pointing up.
func SamplePositions(b *Bitmap, keep float64, rng *rand.Rand) []mgl32.Vec3 {
	pixels := AlphaPixels(b)
	positions := make([]mgl32.Vec3, 0, int(float64(len(pixels))*keep)+1)

	halfW := float32(b.Width) / 2
	halfH := float32(b.Height) / 2
	for _, p := range pixels {
		if rng.Float64() >= keep {
			continue
		}
		positions = append(positions, mgl32.Vec3{
			float32(p.X) - halfW,
			-(float32(p.Y) - halfH),
			0,
		})
	}
	return positions
}
