package textcloud

import (
	"github.com/gekko3d/textcloud/pointcloud/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Key int

const (
	KeyEscape Key = iota
	KeyF1
	KeyTab
	KeyUp
	KeyDown
	KeyR
	KeyS
	Key1
	Key2
	Key3
	Key4
	KeyBackspace
	keyCount
)

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:    KeyEscape,
	glfw.KeyF1:        KeyF1,
	glfw.KeyTab:       KeyTab,
	glfw.KeyUp:        KeyUp,
	glfw.KeyDown:      KeyDown,
	glfw.KeyR:         KeyR,
	glfw.KeyS:         KeyS,
	glfw.Key1:         Key1,
	glfw.Key2:         Key2,
	glfw.Key3:         Key3,
	glfw.Key4:         Key4,
	glfw.KeyBackspace: KeyBackspace,
}

// InputQueue collects window events between frames. Messages are applied to
// the render context in arrival order.
type InputQueue struct {
	messages    []core.Message
	justPressed [keyCount]bool
	pending     [keyCount]bool

	CloseRequested bool
}

func (q *InputQueue) Push(msg core.Message) {
	q.messages = append(q.messages, msg)
}

// Press records a key press to be reported by JustPressed on the next frame.
func (q *InputQueue) Press(key Key) {
	if key >= 0 && key < keyCount {
		q.pending[key] = true
	}
}

func (q *InputQueue) JustPressed(key Key) bool {
	return key >= 0 && key < keyCount && q.justPressed[key]
}

// Drain hands the queued messages to fn and empties the queue. Key presses
// recorded since the last Drain become visible through JustPressed.
func (q *InputQueue) Drain(fn func(core.Message)) {
	for _, msg := range q.messages {
		fn(msg)
	}
	q.messages = q.messages[:0]
	q.justPressed = q.pending
	q.pending = [keyCount]bool{}
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	q := &InputQueue{}
	cmd.AddResources(q)

	if ws, ok := Resource[WindowState](app); ok {
		bindWindowEvents(ws, q)
		cmd.UseSystem(
			System(pollEventsSystem).
				InStage(PreUpdate),
		)
	}
	cmd.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func bindWindowEvents(ws *WindowState, q *InputQueue) {
	win := ws.windowGlfw
	win.SetSizeCallback(func(w *glfw.Window, width, height int) {
		ws.WindowWidth, ws.WindowHeight = width, height
		q.Push(core.Resize{Width: width, Height: height, DevicePixelRatio: ws.PixelRatio()})
	})
	// Moving to a monitor with another scale changes only the framebuffer.
	win.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		width, height := w.GetSize()
		q.Push(framebufferResize(width, height, fbWidth))
	})
	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		q.Push(core.PointerMove{X: x, Y: y})
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if k, ok := glfwToKey[key]; ok {
			q.Press(k)
		}
	})
	win.SetCloseCallback(func(w *glfw.Window) {
		q.CloseRequested = true
	})
}

// framebufferResize keeps the logical size and derives the pixel ratio from
// the framebuffer width.
func framebufferResize(width, height, fbWidth int) core.Resize {
	r := core.Resize{Width: width, Height: height}
	if width > 0 && fbWidth > 0 {
		r.DevicePixelRatio = float32(fbWidth) / float32(width)
	}
	return r
}

func pollEventsSystem(ws *WindowState, q *InputQueue) {
	glfw.PollEvents()
	if ws.ShouldClose() {
		q.CloseRequested = true
	}
}

func inputSystem(q *InputQueue, rc *core.RenderContext, cmd *Commands) {
	q.Drain(func(msg core.Message) {
		rc.Update(msg)
	})
	if q.CloseRequested || q.JustPressed(KeyEscape) {
		cmd.Quit()
	}
}
