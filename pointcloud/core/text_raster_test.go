package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontSize(t *testing.T) {
	tests := []struct {
		text  string
		width float64
		want  float64
	}{
		{"HI", 800, 80},
		{"CHEERS", 600, 50},
		{"CHEERS", 2000, 80},
		{"", 800, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FontSize(tt.text, tt.width, DefaultMaxFontSize), "text %q at width %v", tt.text, tt.width)
	}
}

func TestRasterize_Hi(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)

	bmp, err := r.Rasterize("Hi", 800)
	require.NoError(t, err)

	assert.Equal(t, 76, bmp.Height, "height is ceil(80) * 0.95")
	assert.Greater(t, bmp.Width, 0)
	assert.Len(t, bmp.Pix, bmp.Width*bmp.Height*4)
	assert.NotEmpty(t, AlphaPixels(bmp))
}

func edgeInk(b *Bitmap) (top, bottom, left, right int) {
	for x := 0; x < b.Width; x++ {
		if b.Alpha(x, 0) > 0 {
			top++
		}
		if b.Alpha(x, b.Height-1) > 0 {
			bottom++
		}
	}
	for y := 0; y < b.Height; y++ {
		if b.Alpha(0, y) > 0 {
			left++
		}
		if b.Alpha(b.Width-1, y) > 0 {
			right++
		}
	}
	return
}

func TestRasterize_InkStaysInsideBox(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)

	tests := []struct {
		text  string
		width float64
	}{
		{"Cheers", 1280},
		{"Cheers", 600},
		{"SOCQ", 800},
		{"JUGO", 800},
		{"AVATAR", 1000},
	}
	for _, tt := range tests {
		bmp, err := r.Rasterize(tt.text, tt.width)
		require.NoError(t, err)
		require.NotEmpty(t, AlphaPixels(bmp))

		top, bottom, left, right := edgeInk(bmp)
		assert.Zero(t, top, "%q top row", tt.text)
		assert.Zero(t, bottom, "%q bottom row", tt.text)
		assert.Zero(t, left, "%q left column", tt.text)
		assert.Zero(t, right, "%q right column", tt.text)
	}
}

func TestRasterize_UpperCases(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)

	lower, err := r.Rasterize("cheers", 1200)
	require.NoError(t, err)
	upper, err := r.Rasterize("CHEERS", 1200)
	require.NoError(t, err)

	assert.Equal(t, upper.Width, lower.Width)
	assert.Equal(t, upper.Height, lower.Height)
	assert.Equal(t, upper.Pix, lower.Pix)
}

func TestRasterize_EmptyText(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)

	bmp, err := r.Rasterize("", 800)
	require.NoError(t, err)
	assert.Equal(t, 0, bmp.Width)
	assert.Empty(t, AlphaPixels(bmp))
}

func TestRasterize_ZeroViewport(t *testing.T) {
	r, err := NewDefaultTextRasterizer()
	require.NoError(t, err)

	bmp, err := r.Rasterize("Hi", 0)
	require.NoError(t, err)
	assert.Empty(t, AlphaPixels(bmp))
}

func TestNewTextRasterizer_BadFont(t *testing.T) {
	_, err := NewTextRasterizer([]byte("not a font"))
	assert.Error(t, err)
}
