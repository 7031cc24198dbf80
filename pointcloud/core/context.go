package core

import "github.com/go-gl/mathgl/mgl32"

// Uniforms are the shader inputs written by the frame loop and input handlers.
// Mouse is uploaded but not read by the current shaders.
type Uniforms struct {
	Resolution mgl32.Vec2
	Mouse      mgl32.Vec2
	Time       float32
}

// UniformBlock mirrors the WGSL Uniforms struct, std140 aligned.
type UniformBlock struct {
	Projection mgl32.Mat4
	ModelView  mgl32.Mat4
	Resolution [2]float32
	Mouse      [2]float32
	Time       float32
	_          [3]float32
}

type Viewport struct {
	Width  int
	Height int
}

// Message is an input event delivered to RenderContext.Update.
type Message interface {
	isMessage()
}

// Resize carries the new logical viewport size. A positive DevicePixelRatio
// replaces the current one.
type Resize struct {
	Width            int
	Height           int
	DevicePixelRatio float32
}

// PointerMove carries a cursor position in logical pixels from the top-left corner.
type PointerMove struct {
	X float64
	Y float64
}

func (Resize) isMessage()      {}
func (PointerMove) isMessage() {}

// RenderContext is all mutable render state. It is owned by the frame loop
// and only touched from the thread running it.
type RenderContext struct {
	Viewport         Viewport
	DevicePixelRatio float32
	Uniforms         Uniforms
	Camera           *Camera
	Scene            *Scene
}

func NewRenderContext(cam *Camera, scene *Scene, dpr float32) *RenderContext {
	if dpr <= 0 {
		dpr = 1
	}
	return &RenderContext{
		DevicePixelRatio: dpr,
		Camera:           cam,
		Scene:            scene,
	}
}

// Update applies one input message and reports whether it changed anything.
func (rc *RenderContext) Update(msg Message) bool {
	switch m := msg.(type) {
	case Resize:
		if m.Width <= 0 || m.Height <= 0 {
			return false
		}
		if m.DevicePixelRatio > 0 {
			rc.DevicePixelRatio = m.DevicePixelRatio
		}
		rc.Viewport = Viewport{Width: m.Width, Height: m.Height}
		rc.Uniforms.Resolution = mgl32.Vec2{
			float32(m.Width) * rc.DevicePixelRatio,
			float32(m.Height) * rc.DevicePixelRatio,
		}
		rc.Camera.Perspective(float32(m.Width) / float32(m.Height))
		return true

	case PointerMove:
		w := float64(rc.Viewport.Width)
		h := float64(rc.Viewport.Height)
		if w <= 0 || h <= 0 {
			return false
		}
		rc.Uniforms.Mouse = mgl32.Vec2{
			float32((m.X - w/2) / w),
			float32((m.Y - h/2) / h * -1),
		}
		return true
	}
	return false
}

// Tick records the elapsed time in seconds.
func (rc *RenderContext) Tick(elapsed float64) {
	rc.Uniforms.Time = float32(elapsed)
}

// SurfaceSize is the drawable size in physical pixels.
func (rc *RenderContext) SurfaceSize() (int, int) {
	return int(float32(rc.Viewport.Width) * rc.DevicePixelRatio),
		int(float32(rc.Viewport.Height) * rc.DevicePixelRatio)
}

func (rc *RenderContext) UniformBlock() UniformBlock {
	return UniformBlock{
		Projection: rc.Camera.Projection(),
		ModelView:  rc.Scene.ModelView(rc.Camera),
		Resolution: rc.Uniforms.Resolution,
		Mouse:      rc.Uniforms.Mouse,
		Time:       rc.Uniforms.Time,
	}
}
