//go:build !production

package textcloud

import (
	"testing"

	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectorModule_Keys(t *testing.T) {
	app, _ := newParticlesApp(t, "Hi")
	app.UseModules(InspectorModule{})

	in, ok := Resource[core.Inspector](app)
	require.True(t, ok)
	q, _ := Resource[InputQueue](app)
	rc, _ := Resource[core.RenderContext](app)

	q.Press(KeyUp)
	app.Step()
	assert.Equal(t, float32(100), rc.Camera.Position.Z(), "closed inspector ignores keys")

	q.Press(KeyF1)
	app.Step()
	assert.True(t, in.Open)

	q.Press(KeyUp)
	app.Step()
	assert.Equal(t, float32(110), rc.Camera.Position.Z())

	q.Press(KeyTab)
	app.Step()
	assert.Equal(t, 1, in.Selected)

	q.Press(KeyDown)
	app.Step()
	assert.Equal(t, float32(-10), rc.Scene.Particles.Position.X())
}

func TestInspectorModule_SelectAndReset(t *testing.T) {
	app, _ := newParticlesApp(t, "Hi")
	app.UseModules(InspectorModule{})

	in, _ := Resource[core.Inspector](app)
	q, _ := Resource[InputQueue](app)
	rc, _ := Resource[core.RenderContext](app)
	in.Open = true

	q.Press(Key3)
	app.Step()
	assert.Equal(t, 2, in.Selected)

	q.Press(KeyUp)
	app.Step()
	assert.Equal(t, float32(10), rc.Scene.Particles.Position.Y())

	q.Press(KeyBackspace)
	app.Step()
	assert.Equal(t, float32(0), rc.Scene.Particles.Position.Y())
}

func TestInspectorModule_RequiresParticles(t *testing.T) {
	assert.Panics(t, func() {
		NewApp().UseModules(InspectorModule{})
	})
}
