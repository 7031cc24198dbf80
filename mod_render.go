package textcloud

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/gekko3d/textcloud/pointcloud/gpu"
)

// GpuState holds the device and the passes drawing into the window surface.
type GpuState struct {
	device     *gpu.Device
	background *gpu.BackgroundPass
	particles  *gpu.ParticlePass
}

// clearColor stays transparent white so the background pass owns the look.
var clearColor = wgpu.Color{R: 1, G: 1, B: 1, A: 0}

func createGpuState(ws *WindowState) *GpuState {
	fw, fh := ws.FramebufferSize()
	device, err := gpu.NewDevice(ws.SurfaceDescriptor(), fw, fh)
	if err != nil {
		panic(err)
	}
	background, err := gpu.NewBackgroundPass(device.Device, device.Format())
	if err != nil {
		device.Release()
		panic(err)
	}
	particles, err := gpu.NewParticlePass(device.Device, device.Format())
	if err != nil {
		background.Release()
		device.Release()
		panic(err)
	}
	return &GpuState{
		device:     device,
		background: background,
		particles:  particles,
	}
}

func (s *GpuState) release() {
	s.particles.Release()
	s.background.Release()
	s.device.Release()
}

// RenderModule draws the render context into the window every frame.
// It needs the PlatformWindowModule.
type RenderModule struct{}

func (m RenderModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[GpuState](app); ok {
		panic("RenderModule installed twice")
	}
	ws, ok := Resource[WindowState](app)
	if !ok {
		panic("RenderModule requires a WindowState resource")
	}

	gs := createGpuState(ws)
	app.Logger().Infof("surface format %v", gs.device.Format())
	cmd.AddResources(gs)
	cmd.Defer(gs.release)

	cmd.UseSystem(
		System(uploadGeometrySystem).
			InStage(PreRender),
	)
	cmd.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

func uploadGeometrySystem(gs *GpuState, rc *core.RenderContext, logger Logger) {
	uploaded, err := gs.particles.SetGeometry(gs.device.Queue, rc.Scene.Particles)
	if err != nil {
		logger.Errorf("upload particles: %v", err)
		return
	}
	if uploaded {
		logger.Debugf("uploaded %d particles (version %d)", gs.particles.InstanceCount, rc.Scene.Particles.Version)
	}
}

func renderSystem(ws *WindowState, gs *GpuState, rc *core.RenderContext, logger Logger) {
	fw, fh := ws.FramebufferSize()
	if fw <= 0 || fh <= 0 {
		// minimized
		return
	}
	gs.device.Resize(fw, fh)

	if err := gs.particles.UpdateUniforms(gs.device.Queue, rc.UniformBlock()); err != nil {
		logger.Errorf("write uniforms: %v", err)
		return
	}
	gradient := gpu.NewGradientBlock(core.GradientInner, core.GradientOuter, float32(fw), float32(fh))
	if err := gs.background.Update(gs.device.Queue, gradient); err != nil {
		logger.Errorf("write gradient: %v", err)
		return
	}

	err := gs.device.Frame(clearColor, func(pass *wgpu.RenderPassEncoder) {
		gs.background.Draw(pass)
		gs.particles.Draw(pass)
	})
	if err != nil {
		logger.Warnf("frame skipped: %v", err)
	}
}
