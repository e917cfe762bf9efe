package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vtable"
)

// GLFWInputAdapter adapts GLFW input to vtable.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *vtable.InputState
}

// NewGLFWInputAdapter installs input callbacks on window.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  vtable.NewInputState(),
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Update starts a new input frame. Call it before glfw.PollEvents so
// callbacks fire into the fresh frame.
func (a *GLFWInputAdapter) Update() *vtable.InputState {
	a.input.Reset()

	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyLeftSuper) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightSuper) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press

	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *vtable.InputState {
	return a.input
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	if k == vtable.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

func glfwKey(key glfw.Key) vtable.Key {
	switch key {
	case glfw.KeyLeft:
		return vtable.KeyLeft
	case glfw.KeyRight:
		return vtable.KeyRight
	case glfw.KeyUp:
		return vtable.KeyUp
	case glfw.KeyDown:
		return vtable.KeyDown
	case glfw.KeyPageUp:
		return vtable.KeyPageUp
	case glfw.KeyPageDown:
		return vtable.KeyPageDown
	case glfw.KeyHome:
		return vtable.KeyHome
	case glfw.KeyEnd:
		return vtable.KeyEnd
	case glfw.KeyEnter:
		return vtable.KeyEnter
	case glfw.KeyEscape:
		return vtable.KeyEscape
	case glfw.KeyA:
		return vtable.KeyA
	case glfw.KeyC:
		return vtable.KeyC
	default:
		return vtable.KeyNone
	}
}

func glfwMouseButton(button glfw.MouseButton) vtable.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return vtable.MouseButtonLeft
	case glfw.MouseButtonRight:
		return vtable.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return vtable.MouseButtonMiddle
	default:
		return -1
	}
}

// Clipboard writes to the system clipboard through GLFW.
type Clipboard struct {
	window *glfw.Window
}

// NewClipboard returns a clipboard bound to window.
func NewClipboard(window *glfw.Window) *Clipboard {
	return &Clipboard{window: window}
}

// SetText implements vtable.ClipboardProvider.
func (c *Clipboard) SetText(text string) error {
	c.window.SetClipboardString(text)
	return nil
}

// CursorShaper switches the window cursor when a pointer capture asks for
// another shape. Pass its Apply method to vtable.NewPointerHub.
type CursorShaper struct {
	window *glfw.Window
	resize *glfw.Cursor
}

// NewCursorShaper creates the standard cursors for window.
func NewCursorShaper(window *glfw.Window) *CursorShaper {
	return &CursorShaper{
		window: window,
		resize: glfw.CreateStandardCursor(glfw.HResizeCursor),
	}
}

// Apply sets the window cursor for c.
func (s *CursorShaper) Apply(c vtable.Cursor) {
	switch c {
	case vtable.CursorColumnResize:
		s.window.SetCursor(s.resize)
	default:
		s.window.SetCursor(nil)
	}
}

// Destroy frees the cursors.
func (s *CursorShaper) Destroy() {
	if s.resize != nil {
		s.resize.Destroy()
		s.resize = nil
	}
}
