package textcloud

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gekko3d/textcloud/pointcloud/core"
)

// ParticleBuilder turns text into particle attributes.
type ParticleBuilder struct {
	Rasterizer *core.TextRasterizer
	Palette    core.Palette
	Sizes      core.SizeRange
	Keep       float64
	Rand       *rand.Rand
}

// BuildStats describes one build. BitmapBytes is the raster length in bytes,
// four per pixel.
type BuildStats struct {
	BitmapBytes int
	Particles   int
}

func NewParticleBuilder(cfg TextConfig, rng *rand.Rand) (*ParticleBuilder, error) {
	palette, err := core.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	rast, err := core.NewDefaultTextRasterizer()
	if err != nil {
		return nil, err
	}
	rast.MaxFontSize = cfg.MaxFontSize
	if rng == nil {
		rng = newRand(cfg.Seed)
	}
	return &ParticleBuilder{
		Rasterizer: rast,
		Palette:    palette,
		Sizes:      cfg.SizeRange(),
		Keep:       cfg.KeepProbability,
		Rand:       rng,
	}, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Build rasterizes text at the viewport width, thins the inked pixels and
// assigns colours and sizes. All three buffers are regenerated together.
func (b *ParticleBuilder) Build(text string, viewportWidth float64) (core.ParticleAttributes, BuildStats, error) {
	bitmap, err := b.Rasterizer.Rasterize(text, viewportWidth)
	if err != nil {
		return core.ParticleAttributes{}, BuildStats{}, err
	}
	positions := core.SamplePositions(bitmap, b.Keep, b.Rand)
	attrs := core.BuildAttributes(positions, b.Palette, b.Sizes, b.Rand)
	return attrs, BuildStats{BitmapBytes: len(bitmap.Pix), Particles: attrs.Count()}, nil
}

// ParticleSet is the text currently shown.
type ParticleSet struct {
	Text  string
	Stats BuildStats
}

// Rebuild replaces the mesh geometry with a fresh build of text.
func Rebuild(rc *core.RenderContext, b *ParticleBuilder, set *ParticleSet, text string, logger Logger) error {
	attrs, stats, err := b.Build(text, float64(rc.Viewport.Width))
	if err != nil {
		return fmt.Errorf("build particles for %q: %w", text, err)
	}
	rc.Scene.Particles.SetGeometry(attrs)
	set.Text = text
	set.Stats = stats

	logger.Infof("%d positions", stats.BitmapBytes)
	logger.Infof("%d particles", stats.Particles)
	if stats.Particles == 0 {
		logger.Warnf("text %q produced no particles", text)
	}
	return nil
}

// TextParticlesModule builds the render context and the initial particle set.
// The viewport comes from the window when there is one, otherwise from the
// config window size at a pixel ratio of 1.
type TextParticlesModule struct {
	// Text overrides the configured text when set.
	Text string
	Rand *rand.Rand
}

func (m TextParticlesModule) Install(app *App, cmd *Commands) {
	cfg, ok := Resource[Config](app)
	if !ok {
		cfg = DefaultConfig()
	}
	logger := app.Logger()

	builder, err := NewParticleBuilder(cfg.Text, m.Rand)
	if err != nil {
		panic(err)
	}

	width, height, dpr := cfg.Window.Width, cfg.Window.Height, float32(1)
	if ws, ok := Resource[WindowState](app); ok {
		width, height = ws.Size()
		dpr = ws.PixelRatio()
	}

	cam := cfg.Camera.NewCamera()
	scene := core.NewScene(core.ParticleAttributes{})
	scene.Particles.Position[2] = cfg.Camera.MeshZ

	rc := core.NewRenderContext(cam, scene, dpr)
	rc.Update(core.Resize{Width: width, Height: height})

	text := cfg.Text.Value
	if m.Text != "" {
		text = m.Text
	}
	set := &ParticleSet{}
	if err := Rebuild(rc, builder, set, text, logger); err != nil {
		panic(err)
	}

	cmd.AddResources(rc, builder, set)
	cmd.UseSystem(
		System(rebuildOnKeySystem).
			InStage(Update),
	)
}

// rebuildOnKeySystem resamples the current text when R is pressed.
func rebuildOnKeySystem(q *InputQueue, rc *core.RenderContext, b *ParticleBuilder, set *ParticleSet, logger Logger) {
	if !q.JustPressed(KeyR) {
		return
	}
	if err := Rebuild(rc, b, set, set.Text, logger); err != nil {
		logger.Errorf("%v", err)
	}
}
