package core

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitmapWithInk(w, h int, ink ...image.Point) *Bitmap {
	b := &Bitmap{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for _, p := range ink {
		b.Pix[(p.X+p.Y*w)*4+3] = 0xff
	}
	return b
}

func solidBitmap(w, h int) *Bitmap {
	b := &Bitmap{Width: w, Height: h, Pix: make([]uint8, w*h*4)}
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 1
	}
	return b
}

func TestAlphaPixels_ColumnMajor(t *testing.T) {
	b := bitmapWithInk(4, 3,
		image.Pt(3, 0),
		image.Pt(0, 2),
		image.Pt(0, 1),
		image.Pt(2, 2),
	)

	got := AlphaPixels(b)
	assert.Equal(t, []image.Point{
		{X: 0, Y: 1},
		{X: 0, Y: 2},
		{X: 2, Y: 2},
		{X: 3, Y: 0},
	}, got)
}

func TestSamplePositions_CenteredAndFlipped(t *testing.T) {
	b := bitmapWithInk(10, 6, image.Pt(0, 0), image.Pt(9, 5), image.Pt(5, 3))
	rng := rand.New(rand.NewSource(1))

	positions := SamplePositions(b, 1, rng)
	require.Len(t, positions, 3)

	ink := map[image.Point]bool{}
	for _, p := range AlphaPixels(b) {
		ink[p] = true
	}
	for _, p := range positions {
		assert.Equal(t, float32(0), p.Z())
		x := p.X() + float32(b.Width)/2
		y := -p.Y() + float32(b.Height)/2
		assert.True(t, ink[image.Pt(int(x), int(y))], "position %v does not map back to an inked pixel", p)
		assert.Equal(t, x, float32(int(x)))
		assert.Equal(t, y, float32(int(y)))
	}

	assert.Equal(t, float32(-5), positions[0].X())
	assert.Equal(t, float32(3), positions[0].Y())
}

func TestSamplePositions_ThinningRatio(t *testing.T) {
	b := solidBitmap(100, 100)
	rng := rand.New(rand.NewSource(42))

	positions := SamplePositions(b, DefaultKeepProbability, rng)
	total := len(AlphaPixels(b))

	assert.LessOrEqual(t, len(positions), total)
	ratio := float64(len(positions)) / float64(total)
	assert.InDelta(t, 0.5, ratio, 0.05)
}

func TestSamplePositions_KeepNothing(t *testing.T) {
	b := solidBitmap(8, 8)
	positions := SamplePositions(b, 0, rand.New(rand.NewSource(3)))
	assert.Empty(t, positions)
}

func TestSamplePositions_WithinBitmapBounds(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)
	b, err := r.Rasterize("Hi", 800)
	require.NoError(t, err)

	positions := SamplePositions(b, DefaultKeepProbability, rand.New(rand.NewSource(7)))
	require.NotEmpty(t, positions)

	hw, hh := float32(b.Width)/2, float32(b.Height)/2
	for _, p := range positions {
		assert.Equal(t, float32(0), p.Z())
		assert.True(t, p.X() >= -hw && p.X() <= hw, "x %v outside ±%v", p.X(), hw)
		assert.True(t, p.Y() >= -hh && p.Y() <= hh, "y %v outside ±%v", p.Y(), hh)
	}
}
