package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds normalized RGB colours.
type Palette []mgl32.Vec3

// DefaultPaletteHex is the "white christmas" scheme.
var DefaultPaletteHex = []string{"930101", "DF0000", "D9DFDC", "B0BFC2"}

var errEmptyPalette = errors.New("palette is empty")

// ParsePalette accepts "rrggbb", "#rrggbb" or the three digit short forms.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, errEmptyPalette
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		p = append(p, mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)})
	}
	return p, nil
}

func ParseHexColor(h string) (colorful.Color, error) {
	c, err := colorful.Hex("#" + strings.TrimPrefix(strings.TrimSpace(h), "#"))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("palette entry %q: %w", h, err)
	}
	return c, nil
}

func (p Palette) Contains(c mgl32.Vec3) bool {
	for _, e := range p {
		if e == c {
			return true
		}
	}
	return false
}

// SizeRange is a half-open [Min, Max) range of point diameters in pixels.
type SizeRange struct {
	Min float32
	Max float32
}

var DefaultSizeRange = SizeRange{Min: 2, Max: 8}

func (s SizeRange) sample(rng *rand.Rand) float32 {
	v := float32(float64(s.Min) + rng.Float64()*float64(s.Max-s.Min))
	if v >= s.Max {
		v = math.Nextafter32(s.Max, s.Min)
	}
	return v
}

// ParticleAttributes are the index-aligned per-particle buffers:
// 3 floats of position, 3 of colour and 1 of size per particle.
type ParticleAttributes struct {
	Positions []float32
	Colors    []float32
	Sizes     []float32
}

func (a ParticleAttributes) Count() int {
	return len(a.Sizes)
}

// BuildAttributes assigns each position a random palette colour and size.
// The palette must not be empty.
func BuildAttributes(positions []mgl32.Vec3, palette Palette, sizes SizeRange, rng *rand.Rand) ParticleAttributes {
	if len(palette) == 0 {
		panic(errEmptyPalette)
	}

	colors := make([]mgl32.Vec3, len(positions))
	for i := range colors {
		colors[i] = palette[rng.Intn(len(palette))]
	}

	sz := make([]float32, len(positions))
	for i := range sz {
		sz[i] = sizes.sample(rng)
	}

	return ParticleAttributes{
		Positions: Flatten(positions),
		Colors:    Flatten(colors),
		Sizes:     sz,
	}
}

// Flatten lays out a sequence of triples as one contiguous buffer.
func Flatten[V ~[3]float32](vs []V) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// ParticleInstance matches the per-instance vertex layout in particles.wgsl.
type ParticleInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

// Instances interleaves the attribute buffers for upload.
func (a ParticleAttributes) Instances() []ParticleInstance {
	n := a.Count()
	out := make([]ParticleInstance, n)
	for i := 0; i < n; i++ {
		out[i] = ParticleInstance{
			Pos:   [3]float32{a.Positions[i*3], a.Positions[i*3+1], a.Positions[i*3+2]},
			Size:  a.Sizes[i],
			Color: [4]float32{a.Colors[i*3], a.Colors[i*3+1], a.Colors[i*3+2], 1},
		}
	}
	return out
}
