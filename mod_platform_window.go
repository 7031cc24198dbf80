package textcloud

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the single GLFW window shared by the render and input modules.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.TransparentFramebuffer, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		panic(err)
	}

	w, h := win.GetSize()
	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  w,
		WindowHeight: h,
		windowTitle:  windowTitle,
	}
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}

// Size is the window size in logical pixels.
func (s *WindowState) Size() (int, int) {
	return s.windowGlfw.GetSize()
}

// FramebufferSize is the drawable size in physical pixels.
func (s *WindowState) FramebufferSize() (int, int) {
	return s.windowGlfw.GetFramebufferSize()
}

// PixelRatio is physical pixels per logical pixel, 1 when the window is minimized.
func (s *WindowState) PixelRatio() float32 {
	w, _ := s.windowGlfw.GetSize()
	fw, _ := s.windowGlfw.GetFramebufferSize()
	if w <= 0 || fw <= 0 {
		return 1
	}
	return float32(fw) / float32(w)
}

func (s *WindowState) ShouldClose() bool {
	return s.windowGlfw.ShouldClose()
}

func (s *WindowState) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(s.windowGlfw)
}

// PlatformWindowModule provides the WindowState resource. Install is a no-op
// when one already exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a window module sized from the config.
func NewPlatformWindow(cfg WindowConfig) PlatformWindowModule {
	m := PlatformWindowModule{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	}
	if m.Width <= 0 {
		m.Width = 1280
	}
	if m.Height <= 0 {
		m.Height = 720
	}
	if m.Title == "" {
		m.Title = "textcloud"
	}
	return m
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.Logger().Infof("window %q %dx%d, pixel ratio %.2f", m.Title, ws.WindowWidth, ws.WindowHeight, ws.PixelRatio())
	cmd.AddResources(ws)
	cmd.Defer(ws.destroy)
}
