package core

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderSnapshot draws the scene in software: the background gradient, then
// every particle of every mesh as a sprite of Size output pixels blended source-over with
// SpriteAlpha. It mirrors what the GPU passes draw.
func RenderSnapshot(rc *RenderContext, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	buf := make([][3]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := GradientAt(float64(x)+0.5, float64(y)+0.5, float64(width), float64(height))
			buf[x+y*width] = [3]float64{c.R, c.G, c.B}
		}
	}

	proj := rc.Camera.Projection()
	view := rc.Camera.View()
	for _, m := range rc.Scene.Meshes() {
		mvp := proj.Mul4(view.Mul4(m.WorldMatrix()))
		g := m.Geometry
		for i := 0; i < g.Count(); i++ {
			clip := mvp.Mul4x1(mgl32.Vec4{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2], 1})
			if clip.W() <= 0 {
				continue
			}
			ndcX := float64(clip.X() / clip.W())
			ndcY := float64(clip.Y() / clip.W())
			cx := (ndcX*0.5 + 0.5) * float64(width)
			cy := (1 - (ndcY*0.5 + 0.5)) * float64(height)

			col := [3]float64{float64(g.Colors[i*3]), float64(g.Colors[i*3+1]), float64(g.Colors[i*3+2])}
			splat(buf, width, height, cx, cy, float64(g.Sizes[i]), col)
		}
	}

	for i, c := range buf {
		img.Pix[i*4+0] = toByte(c[0])
		img.Pix[i*4+1] = toByte(c[1])
		img.Pix[i*4+2] = toByte(c[2])
		img.Pix[i*4+3] = 0xff
	}
	return img
}

func splat(buf [][3]float64, width, height int, cx, cy, size float64, col [3]float64) {
	if size <= 0 {
		return
	}
	x0, y0 := cx-size/2, cy-size/2
	minX := max(int(math.Floor(x0)), 0)
	minY := max(int(math.Floor(y0)), 0)
	maxX := min(int(math.Ceil(x0+size)), width)
	maxY := min(int(math.Ceil(y0+size)), height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			u := (float64(x) + 0.5 - x0) / size
			v := (float64(y) + 0.5 - y0) / size
			if u < 0 || u > 1 || v < 0 || v > 1 {
				continue
			}
			a := float64(SpriteAlpha(float32(u), float32(v)))
			if a <= 0 {
				continue
			}
			dst := &buf[x+y*width]
			for k := 0; k < 3; k++ {
				dst[k] = col[k]*a + dst[k]*(1-a)
			}
		}
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
