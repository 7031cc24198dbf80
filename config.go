package textcloud

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/pelletier/go-toml/v2"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Text   TextConfig   `toml:"text"`
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Debug  bool         `toml:"debug"`
}

type TextConfig struct {
	Value           string   `toml:"value"`
	MaxFontSize     float64  `toml:"max_font_size"`
	KeepProbability float64  `toml:"keep_probability"`
	Palette         []string `toml:"palette"`
	SizeMin         float32  `toml:"size_min"`
	SizeMax         float32  `toml:"size_max"`
	// Seed 0 picks a seed from the clock.
	Seed int64 `toml:"seed"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Fov   float32 `toml:"fov"`
	Near  float32 `toml:"near"`
	Far   float32 `toml:"far"`
	Z     float32 `toml:"z"`
	MeshZ float32 `toml:"mesh_z"`
}

func DefaultConfig() *Config {
	cam := core.NewCamera()
	return &Config{
		Text: TextConfig{
			Value:           "Cheers",
			MaxFontSize:     core.DefaultMaxFontSize,
			KeepProbability: core.DefaultKeepProbability,
			Palette:         append([]string(nil), core.DefaultPaletteHex...),
			SizeMin:         core.DefaultSizeRange.Min,
			SizeMax:         core.DefaultSizeRange.Max,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "textcloud",
		},
		Camera: CameraConfig{
			Fov:   cam.Fov,
			Near:  cam.Near,
			Far:   cam.Far,
			Z:     cam.Position.Z(),
			MeshZ: core.DefaultMeshDepth,
		},
	}
}

// ParseConfig decodes TOML over the defaults. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	t := c.Text
	if _, err := core.ParsePalette(t.Palette); err != nil {
		return invalid("text.palette: %v", err)
	}
	if !(t.KeepProbability > 0 && t.KeepProbability <= 1) {
		return invalid("text.keep_probability %v not in (0, 1]", t.KeepProbability)
	}
	if !(t.SizeMin >= 0 && t.SizeMin < t.SizeMax) {
		return invalid("text.size_min %v must be below text.size_max %v", t.SizeMin, t.SizeMax)
	}
	if !(t.MaxFontSize > 0) || math.IsInf(t.MaxFontSize, 0) {
		return invalid("text.max_font_size %v must be positive", t.MaxFontSize)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	cam := c.Camera
	if !(cam.Fov > 0 && cam.Fov < 180) {
		return invalid("camera.fov %v not in (0, 180)", cam.Fov)
	}
	if !(cam.Near > 0 && cam.Near < cam.Far) {
		return invalid("camera.near %v must be positive and below camera.far %v", cam.Near, cam.Far)
	}
	return nil
}

func (t TextConfig) SizeRange() core.SizeRange {
	return core.SizeRange{Min: t.SizeMin, Max: t.SizeMax}
}

// NewCamera builds a camera from the config.
func (c CameraConfig) NewCamera() *core.Camera {
	cam := core.NewCamera()
	cam.Fov = c.Fov
	cam.Near = c.Near
	cam.Far = c.Far
	cam.Position[2] = c.Z
	return cam
}

// ConfigModule installs Config as a resource. Path takes precedence over
// Config; with neither set the defaults are used.
type ConfigModule struct {
	Path   string
	Config *Config
}

func (m ConfigModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if m.Path != "" {
		loaded, err := LoadConfig(m.Path)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if cfg.Debug {
		app.Logger().SetDebug(true)
	}
	app.Logger().Debugf("config: text %q, window %dx%d", cfg.Text.Value, cfg.Window.Width, cfg.Window.Height)
	cmd.AddResources(cfg)
}
