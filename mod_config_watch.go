package textcloud

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gekko3d/textcloud/pointcloud/core"
)

// DefaultConfigSettle is how long a config file must stay quiet before it is
// reloaded.
const DefaultConfigSettle = 75 * time.Millisecond

var errEmptyConfig = errors.New("config file is empty")

// ConfigWatcher reports writes to one config file. The parent directory is
// watched so editors that replace the file on save are still seen. A change is
// reported once no event arrived for Settle.
type ConfigWatcher struct {
	Settle time.Duration

	path      string
	watcher   *fsnotify.Watcher
	now       func() time.Time
	pending   bool
	lastEvent time.Time
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &ConfigWatcher{
		Settle:  DefaultConfigSettle,
		path:    abs,
		watcher: w,
		now:     time.Now,
	}, nil
}

// Poll drains pending events without blocking and reports whether the file
// changed and has settled since.
func (cw *ConfigWatcher) Poll() (bool, error) {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return cw.settled(), nil
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				cw.pending = true
				cw.lastEvent = cw.now()
			}
		case err, ok := <-cw.watcher.Errors:
			if ok && err != nil {
				return false, err
			}
		default:
			return cw.settled(), nil
		}
	}
}

func (cw *ConfigWatcher) settled() bool {
	if !cw.pending || cw.now().Sub(cw.lastEvent) < cw.Settle {
		return false
	}
	cw.pending = false
	return true
}

// Load reads the watched file. Blank files are rejected: editors truncate
// before they write.
func (cw *ConfigWatcher) Load() (*Config, error) {
	data, err := os.ReadFile(cw.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", cw.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("load config %s: %w", cw.path, errEmptyConfig)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cw.path, err)
	}
	return cfg, nil
}

func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}

// applyConfig moves the running app from cfg to next. Text, palette, sizes or
// keep probability changes rebuild the whole particle set. Window changes only
// take effect on restart. Nothing changes when the rebuild fails.
func applyConfig(cfg, next *Config, b *ParticleBuilder, rc *core.RenderContext, set *ParticleSet, logger Logger) (bool, error) {
	rebuilt := false
	if !reflect.DeepEqual(next.Text, cfg.Text) {
		rng := b.Rand
		if next.Text.Seed != cfg.Text.Seed {
			rng = newRand(next.Text.Seed)
		}
		nb, err := NewParticleBuilder(next.Text, rng)
		if err != nil {
			return false, err
		}

		text := set.Text
		if next.Text.Value != cfg.Text.Value {
			text = next.Text.Value
		}
		if err := Rebuild(rc, nb, set, text, logger); err != nil {
			return false, err
		}
		*b = *nb
		rebuilt = true
	}

	if next.Debug != cfg.Debug {
		logger.SetDebug(next.Debug)
	}
	if next.Camera != cfg.Camera {
		rc.Camera.Fov = next.Camera.Fov
		rc.Camera.Near = next.Camera.Near
		rc.Camera.Far = next.Camera.Far
		rc.Camera.Position[2] = next.Camera.Z
		rc.Scene.Particles.Position[2] = next.Camera.MeshZ
	}
	if next.Window != cfg.Window {
		logger.Debugf("window settings change on restart")
	}

	*cfg = *next
	return rebuilt, nil
}

// Reload runs ahead of input so a rebuilt particle set is in place before the
// frame's systems see it.
var Reload = Stage{Name: "Reload"}

// ConfigWatchModule reloads the config file when it changes on disk.
// Invalid files are logged and ignored.
type ConfigWatchModule struct {
	Path string
}

func (m ConfigWatchModule) Install(app *App, cmd *Commands) {
	if m.Path == "" {
		return
	}
	cw, err := NewConfigWatcher(m.Path)
	if err != nil {
		app.Logger().Warnf("config watch disabled: %v", err)
		return
	}
	app.Logger().Infof("watching %s", cw.path)
	cmd.AddResources(cw)
	cmd.Defer(func() { cw.Close() })
	app.UseStage(Reload, BeforeStage(PreUpdate))
	cmd.UseSystem(
		System(configWatchSystem).
			InStage(Reload),
	)
}

func configWatchSystem(cw *ConfigWatcher, cfg *Config, b *ParticleBuilder, rc *core.RenderContext, set *ParticleSet, logger Logger) {
	changed, err := cw.Poll()
	if err != nil {
		logger.Warnf("config watch: %v", err)
	}
	if !changed {
		return
	}

	next, err := cw.Load()
	if err != nil {
		logger.Warnf("config reload ignored: %v", err)
		return
	}
	rebuilt, err := applyConfig(cfg, next, b, rc, set, logger)
	if err != nil {
		logger.Warnf("config reload ignored: %v", err)
		return
	}
	logger.Infof("config reloaded (particles rebuilt: %v)", rebuilt)
}
