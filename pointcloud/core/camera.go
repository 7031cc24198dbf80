package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	Position mgl32.Vec3
	Fov      float32 // vertical, degrees
	Near     float32
	Far      float32
	Aspect   float32
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 100},
		Fov:      45,
		Near:     0.1,
		Far:      5000,
		Aspect:   1,
	}
}

// Perspective updates the aspect ratio. Degenerate values are ignored.
func (c *Camera) Perspective(aspect float32) {
	if aspect <= 0 || math.IsInf(float64(aspect), 0) || math.IsNaN(float64(aspect)) {
		return
	}
	c.Aspect = aspect
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// View looks down -Z from the camera position.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z())
}
