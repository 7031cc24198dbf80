package core

import (
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Bitmap is a row-major RGBA raster, 4 bytes per pixel.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

func (b *Bitmap) Alpha(x, y int) uint8 {
	return b.Pix[(x+y*b.Width)*4+3]
}

// Crop places the text in its box. X pads both sides and Y moves the baseline,
// both as fractions of the font size. Width scales the measured advance and
// Height scales the font size.
type Crop struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// DefaultCrop fits upper-case Go Bold: round overshoots, the tails of Q and J
// and Q's right overhang stay inside the box.
var DefaultCrop = Crop{X: 0.1, Y: -0.17, Width: 1, Height: 0.95}

const DefaultMaxFontSize = 80.0

type TextRasterizer struct {
	font        *opentype.Font
	Crop        Crop
	MaxFontSize float64
}

func NewTextRasterizer(ttf []byte) (*TextRasterizer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &TextRasterizer{
		font:        f,
		Crop:        DefaultCrop,
		MaxFontSize: DefaultMaxFontSize,
	}, nil
}

// NewDefaultTextRasterizer uses the embedded Go Bold face.
func NewDefaultTextRasterizer() (*TextRasterizer, error) {
	return NewTextRasterizer(gobold.TTF)
}

// FontSize keeps the text roughly legible: half the viewport width per character,
// capped at maxSize.
func FontSize(text string, viewportWidth, maxSize float64) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return maxSize
	}
	return math.Min(viewportWidth/float64(2*n), maxSize)
}

// Rasterize draws the upper-cased text left aligned with a top baseline into a
// bitmap sized to the cropped text box. Empty text yields a zero-width bitmap.
func (r *TextRasterizer) Rasterize(text string, viewportWidth float64) (*Bitmap, error) {
	text = cases.Upper(language.Und).String(text)
	size := FontSize(text, viewportWidth, r.MaxFontSize)
	if size <= 0 || math.IsNaN(size) {
		return &Bitmap{}, nil
	}

	height := int(math.Ceil(size) * r.Crop.Height)
	if text == "" {
		return &Bitmap{Width: 0, Height: height}, nil
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	defer face.Close()

	advance := float64(font.MeasureString(face, text)) / 64.0
	width := int(math.Ceil(advance*r.Crop.Width + 2*r.Crop.X*size))
	if width <= 0 || height <= 0 {
		return &Bitmap{Width: max(width, 0), Height: max(height, 0)}, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(r.Crop.X * size),
			Y: toFixed(r.Crop.Y*size) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)

	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    img.Pix,
	}, nil
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
