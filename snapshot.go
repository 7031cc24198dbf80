package textcloud

import (
	"fmt"
	"image/png"
	"os"

	"github.com/gekko3d/textcloud/pointcloud/core"
)

// WriteSnapshot renders the context in software at its surface size and
// writes a PNG.
func WriteSnapshot(path string, rc *core.RenderContext) error {
	w, h := rc.SurfaceSize()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("snapshot %s: empty surface %dx%d", path, w, h)
	}
	img := core.RenderSnapshot(rc, w, h)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return f.Close()
}

// Capture runs right after Render, while the frame state is final.
var Capture = Stage{Name: "Capture"}

type snapshotTarget struct {
	path string
}

// SnapshotModule writes PNG snapshots to Path. Headless apps write one on
// the first frame and quit; windowed apps write one whenever S is pressed.
type SnapshotModule struct {
	Path     string
	Headless bool
}

func (m SnapshotModule) Install(app *App, cmd *Commands) {
	if m.Path == "" {
		return
	}
	cmd.AddResources(&snapshotTarget{path: m.Path})
	if m.Headless {
		cmd.UseSystem(
			System(headlessSnapshotSystem).
				InStage(Startup),
		)
		return
	}
	app.UseStage(Capture, AfterStage(Render))
	cmd.UseSystem(
		System(snapshotOnKeySystem).
			InStage(Capture),
	)
}

func headlessSnapshotSystem(target *snapshotTarget, rc *core.RenderContext, logger Logger, cmd *Commands) {
	if err := WriteSnapshot(target.path, rc); err != nil {
		logger.Errorf("%v", err)
	} else {
		logger.Infof("wrote %s", target.path)
	}
	cmd.Quit()
}

func snapshotOnKeySystem(q *InputQueue, target *snapshotTarget, rc *core.RenderContext, logger Logger) {
	if !q.JustPressed(KeyS) {
		return
	}
	if err := WriteSnapshot(target.path, rc); err != nil {
		logger.Errorf("%v", err)
		return
	}
	logger.Infof("wrote %s", target.path)
}
