//go:build !production

package textcloud

import (
	"github.com/gekko3d/textcloud/pointcloud/core"
)

const inspectorStep = 0.01

// InspectorModule edits the camera and mesh placement from the keyboard.
// F1 opens the panel, Tab or 1-4 pick a slider, Up/Down move it by 1% of its
// range and Backspace puts it back.
type InspectorModule struct{}

func (m InspectorModule) Install(app *App, cmd *Commands) {
	rc, ok := Resource[core.RenderContext](app)
	if !ok {
		panic("InspectorModule requires the TextParticlesModule")
	}
	cmd.AddResources(core.NewInspector(rc.Camera, rc.Scene.Particles.Node))
	cmd.UseSystem(
		System(inspectorSystem).
			InStage(Update),
	)
}

func inspectorSystem(q *InputQueue, in *core.Inspector, logger Logger) {
	if q.JustPressed(KeyF1) {
		if in.Toggle() {
			logger.Infof("inspector: %s", in.Current())
		} else {
			logger.Infof("inspector closed")
		}
	}
	if !in.Open {
		return
	}

	for i, k := range []Key{Key1, Key2, Key3, Key4} {
		if !q.JustPressed(k) {
			continue
		}
		if s, err := in.Select(i); err == nil {
			logger.Infof("inspector: %s", s)
		}
	}

	switch {
	case q.JustPressed(KeyBackspace):
		logger.Infof("inspector: %s", in.Reset())
	case q.JustPressed(KeyTab):
		logger.Infof("inspector: %s", in.Next())
	case q.JustPressed(KeyUp):
		in.Step(inspectorStep)
		logger.Infof("inspector: %s", in.Current())
	case q.JustPressed(KeyDown):
		in.Step(-inspectorStep)
		logger.Infof("inspector: %s", in.Current())
	}
}
