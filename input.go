package vtable

import "time"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key the table frontends react to.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyCount
)

// DoubleClickInterval is the longest gap between two presses that still
// counts as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// doubleClickSlop is the distance the pointer may travel between the two
// presses of a double click.
const doubleClickSlop = 4

// InputState is one frame of pointer and keyboard input as the table sees
// it. Backends (GLFW, terminal) fill it in; HandleInput consumes it.
type InputState struct {
	MouseX, MouseY float32

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // Pressed this frame
	mouseUp      [MouseButtonCount]bool // Released this frame
	doubleClick  bool

	lastClickAt  time.Time
	lastClickPos Vec2

	MouseWheelX float32
	MouseWheelY float32

	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool // Pressed this frame

	ModCtrl  bool
	ModShift bool

	now func() time.Time
}

func NewInputState() *InputState {
	return &InputState{now: time.Now}
}

// Reset clears the edge-triggered state. Call it before collecting the
// next frame's events; held buttons and keys persist.
func (s *InputState) Reset() {
	clear(s.mouseClicked[:])
	clear(s.mouseUp[:])
	clear(s.keyPressed[:])
	s.doubleClick = false
	s.MouseWheelX, s.MouseWheelY = 0, 0
}

func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX, s.MouseY = x, y
}

func validButton(b MouseButton) bool { return b >= 0 && b < MouseButtonCount }
func validKey(k Key) bool { return k >= 0 && k < KeyCount }

// SetMouseButton records a button transition. A left press that follows
// the previous one closely in time and space becomes a double click, which
// the table uses to copy a cell.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if !validButton(button) {
		return
	}
	switch was := s.mouseDown[button]; {
	case down && !was:
		s.mouseClicked[button] = true
		if button == MouseButtonLeft {
			s.trackDoubleClick()
		}
	case !down && was:
		s.mouseUp[button] = true
	}
	s.mouseDown[button] = down
}

func (s *InputState) trackDoubleClick() {
	now := time.Now()
	if s.now != nil {
		now = s.now()
	}
	pos := Vec2{X: s.MouseX, Y: s.MouseY}
	near := absf(pos.X-s.lastClickPos.X) <= doubleClickSlop && absf(pos.Y-s.lastClickPos.Y) <= doubleClickSlop

	if !s.lastClickAt.IsZero() && near && now.Sub(s.lastClickAt) <= DoubleClickInterval {
		s.doubleClick = true
		// A third press starts a new pair.
		s.lastClickAt = time.Time{}
		return
	}
	s.lastClickAt = now
	s.lastClickPos = pos
}

func (s *InputState) SetKey(key Key, down bool) {
	if !validKey(key) {
		return
	}
	if down && !s.keyDown[key] {
		s.keyPressed[key] = true
	}
	s.keyDown[key] = down
}

// SetMouseWheel sets the wheel delta in notches; positive Y scrolls up.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX, s.MouseWheelY = x, y
}

func (s *InputState) MouseDown(button MouseButton) bool {
	return validButton(button) && s.mouseDown[button]
}

// MouseClicked reports a press this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	return validButton(button) && s.mouseClicked[button]
}

// MouseReleased reports a release this frame. Column resize drags end on it.
func (s *InputState) MouseReleased(button MouseButton) bool {
	return validButton(button) && s.mouseUp[button]
}

func (s *InputState) MouseDoubleClicked() bool {
	return s.doubleClick
}

func (s *InputState) KeyDown(key Key) bool {
	return validKey(key) && s.keyDown[key]
}

// KeyPressed reports a key going down this frame.
func (s *InputState) KeyPressed(key Key) bool {
	return validKey(key) && s.keyPressed[key]
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
