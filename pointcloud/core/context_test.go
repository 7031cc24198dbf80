package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestContext(dpr float32) *RenderContext {
	return NewRenderContext(NewCamera(), NewScene(ParticleAttributes{}), dpr)
}

func TestRenderContext_Resize(t *testing.T) {
	rc := newTestContext(2)

	assert.True(t, rc.Update(Resize{Width: 800, Height: 600}))
	assert.Equal(t, mgl32.Vec2{1600, 1200}, rc.Uniforms.Resolution)
	assert.InDelta(t, 800.0/600.0, rc.Camera.Aspect, 1e-6)

	assert.True(t, rc.Update(Resize{Width: 400, Height: 300}))
	assert.Equal(t, mgl32.Vec2{800, 600}, rc.Uniforms.Resolution)
	assert.InDelta(t, 400.0/300.0, rc.Camera.Aspect, 1e-6)
	assert.Equal(t, Viewport{Width: 400, Height: 300}, rc.Viewport)

	w, h := rc.SurfaceSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestRenderContext_ResizeUpdatesPixelRatio(t *testing.T) {
	rc := newTestContext(1)
	rc.Update(Resize{Width: 100, Height: 50, DevicePixelRatio: 1.5})
	assert.Equal(t, float32(1.5), rc.DevicePixelRatio)
	assert.Equal(t, mgl32.Vec2{150, 75}, rc.Uniforms.Resolution)
}

func TestRenderContext_IgnoresDegenerateResize(t *testing.T) {
	rc := newTestContext(1)
	rc.Update(Resize{Width: 640, Height: 480})

	assert.False(t, rc.Update(Resize{Width: 0, Height: 480}))
	assert.False(t, rc.Update(Resize{Width: 640, Height: -1}))
	assert.Equal(t, Viewport{Width: 640, Height: 480}, rc.Viewport)
	assert.InDelta(t, 640.0/480.0, rc.Camera.Aspect, 1e-6)
}

func TestRenderContext_PointerMove(t *testing.T) {
	rc := newTestContext(1)

	assert.False(t, rc.Update(PointerMove{X: 10, Y: 10}), "no viewport yet")

	rc.Update(Resize{Width: 800, Height: 600})

	rc.Update(PointerMove{X: 400, Y: 300})
	assert.Equal(t, mgl32.Vec2{0, 0}, rc.Uniforms.Mouse)

	rc.Update(PointerMove{X: 0, Y: 0})
	assert.Equal(t, mgl32.Vec2{-0.5, 0.5}, rc.Uniforms.Mouse)

	rc.Update(PointerMove{X: 800, Y: 600})
	assert.Equal(t, mgl32.Vec2{0.5, -0.5}, rc.Uniforms.Mouse)
}

func TestRenderContext_Tick(t *testing.T) {
	rc := newTestContext(1)
	rc.Tick(1.25)
	assert.Equal(t, float32(1.25), rc.Uniforms.Time)
	assert.Equal(t, float32(1.25), rc.UniformBlock().Time)
}

func TestRenderContext_UniformBlock(t *testing.T) {
	rc := newTestContext(1)
	rc.Update(Resize{Width: 200, Height: 100})
	rc.Update(PointerMove{X: 0, Y: 50})

	block := rc.UniformBlock()
	assert.Equal(t, [2]float32{200, 100}, block.Resolution)
	assert.Equal(t, [2]float32{-0.5, 0}, block.Mouse)
	assert.Equal(t, rc.Camera.Projection(), block.Projection)

	// mesh at z=-500 seen from a camera at z=100
	assert.InDelta(t, -600, block.ModelView.Col(3).Z(), 1e-4)
}
