package textcloud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Cheers", cfg.Text.Value)
	assert.Equal(t, core.DefaultPaletteHex, cfg.Text.Palette)
	assert.Equal(t, 0.5, cfg.Text.KeepProbability)
	assert.Equal(t, 80.0, cfg.Text.MaxFontSize)
	assert.Equal(t, core.SizeRange{Min: 2, Max: 8}, cfg.Text.SizeRange())
	assert.Equal(t, float32(-500), cfg.Camera.MeshZ)

	cam := cfg.Camera.NewCamera()
	assert.Equal(t, core.NewCamera(), cam)
}

func TestParseConfig_OverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
debug = true

[text]
value = "Merry"
palette = ["#000000", "FFFFFF"]
seed = 7

[window]
width = 640

[camera]
z = 250.0
`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "Merry", cfg.Text.Value)
	assert.Equal(t, []string{"#000000", "FFFFFF"}, cfg.Text.Palette)
	assert.Equal(t, int64(7), cfg.Text.Seed)
	assert.Equal(t, 0.5, cfg.Text.KeepProbability, "unset keys keep their defaults")
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, float32(250), cfg.Camera.Z)
}

func TestParseConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "colour = 1"},
		{"syntax", "[text"},
		{"empty palette", "[text]\npalette = []"},
		{"bad hex", "[text]\npalette = [\"GG0000\"]"},
		{"keep zero", "[text]\nkeep_probability = 0.0"},
		{"keep above one", "[text]\nkeep_probability = 1.5"},
		{"sizes reversed", "[text]\nsize_min = 8.0\nsize_max = 2.0"},
		{"font cap", "[text]\nmax_font_size = 0.0"},
		{"window", "[window]\nheight = 0"},
		{"near far", "[camera]\nnear = 10.0\nfar = 1.0"},
		{"fov", "[camera]\nfov = 180.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "textcloud.toml")
	require.NoError(t, os.WriteFile(path, []byte("[text]\nvalue = \"Hi\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi", cfg.Text.Value)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigModule(t *testing.T) {
	app := NewApp().UseModules(ConfigModule{})
	cfg, ok := Resource[Config](app)
	require.True(t, ok)
	assert.Equal(t, DefaultConfig(), cfg)

	custom := DefaultConfig()
	custom.Text.Value = "Hello"
	app = NewApp().UseModules(ConfigModule{Config: custom})
	cfg, _ = Resource[Config](app)
	assert.Same(t, custom, cfg)

	bad := DefaultConfig()
	bad.Text.Palette = nil
	assert.Panics(t, func() {
		NewApp().UseModules(ConfigModule{Config: bad})
	})
}
