package textcloud

import (
	"testing"

	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputQueue_DrainInOrder(t *testing.T) {
	q := &InputQueue{}
	q.Push(core.Resize{Width: 10, Height: 10})
	q.Push(core.PointerMove{X: 1, Y: 2})

	var got []core.Message
	q.Drain(func(m core.Message) { got = append(got, m) })
	assert.Equal(t, []core.Message{core.Resize{Width: 10, Height: 10}, core.PointerMove{X: 1, Y: 2}}, got)

	got = nil
	q.Drain(func(m core.Message) { got = append(got, m) })
	assert.Empty(t, got)
}

func TestInputQueue_JustPressedLastsOneFrame(t *testing.T) {
	q := &InputQueue{}
	q.Press(KeyF1)
	assert.False(t, q.JustPressed(KeyF1), "visible after the next drain")

	q.Drain(func(core.Message) {})
	assert.True(t, q.JustPressed(KeyF1))
	assert.False(t, q.JustPressed(KeyTab))

	q.Drain(func(core.Message) {})
	assert.False(t, q.JustPressed(KeyF1))

	q.Press(Key(-1))
	q.Press(keyCount)
	assert.False(t, q.JustPressed(keyCount))
}

func newInputApp(t *testing.T) (*App, *InputQueue, *core.RenderContext) {
	t.Helper()
	rc := core.NewRenderContext(core.NewCamera(), core.NewScene(core.ParticleAttributes{}), 2)
	app := NewApp()
	app.addResources(rc)
	app.UseModules(InputModule{})
	q, _ := Resource[InputQueue](app)
	return app, q, rc
}

func TestInputModule_AppliesMessages(t *testing.T) {
	app, q, rc := newInputApp(t)

	q.Push(core.Resize{Width: 400, Height: 300})
	q.Push(core.PointerMove{X: 0, Y: 0})
	app.Step()

	assert.Equal(t, mgl32.Vec2{800, 600}, rc.Uniforms.Resolution)
	assert.Equal(t, mgl32.Vec2{-0.5, 0.5}, rc.Uniforms.Mouse)
	assert.False(t, app.Quitting())
}

func TestInputModule_EscapeQuits(t *testing.T) {
	app, q, _ := newInputApp(t)
	q.Press(KeyEscape)
	app.Step()
	assert.True(t, app.Quitting())
}

func TestInputModule_CloseQuits(t *testing.T) {
	app, q, _ := newInputApp(t)
	q.CloseRequested = true
	app.Step()
	assert.True(t, app.Quitting())
}

func TestFramebufferResize_RatioOnly(t *testing.T) {
	assert.Equal(t, core.Resize{Width: 400, Height: 300, DevicePixelRatio: 2}, framebufferResize(400, 300, 800))
	assert.Equal(t, core.Resize{Width: 0, Height: 0}, framebufferResize(0, 0, 0), "minimized")
}

func TestInputModule_PixelRatioChangeUpdatesResolution(t *testing.T) {
	app, q, rc := newInputApp(t)

	q.Push(core.Resize{Width: 400, Height: 300, DevicePixelRatio: 1})
	app.Step()
	require.Equal(t, mgl32.Vec2{400, 300}, rc.Uniforms.Resolution)

	// same window, denser monitor
	q.Push(framebufferResize(400, 300, 800))
	app.Step()
	assert.Equal(t, float32(2), rc.DevicePixelRatio)
	assert.Equal(t, mgl32.Vec2{800, 600}, rc.Uniforms.Resolution)
	w, h := rc.SurfaceSize()
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})
}
