package vtable

// Cursor is the pointer shape requested while a capture is held.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorColumnResize
)

// PointerHandler receives pointer events while it holds a capture.
type PointerHandler interface {
	PointerMove(x, y float32)
	PointerUp(x, y float32)
}

// PointerService hands out document-wide pointer captures.
// While a capture is held every pointer move and release is routed to its
// handler, the cursor shows the requested shape and text selection is locked.
// The returned release func restores both and is safe to call more than once.
type PointerService interface {
	Capture(cursor Cursor, h PointerHandler) (release func())
}

// PointerHub is the headless PointerService used by the backends and tests.
// Backends forward raw pointer events with Move/Up or Feed; the hub routes them
// to the single active capture.
type PointerHub struct {
	active  PointerHandler
	cursor  Cursor
	locked  bool
	serial  int
	onShape func(Cursor)
}

// NewPointerHub creates a hub. onShape, if non-nil, is called whenever the
// requested cursor changes.
func NewPointerHub(onShape func(Cursor)) *PointerHub {
	return &PointerHub{onShape: onShape}
}

// Capture implements PointerService. A new capture replaces any previous one.
func (p *PointerHub) Capture(cursor Cursor, h PointerHandler) func() {
	p.serial++
	id := p.serial
	p.active = h
	p.locked = true
	p.setCursor(cursor)

	return func() {
		// A newer capture owns the hub now.
		if p.serial != id || p.active == nil {
			return
		}
		p.active = nil
		p.locked = false
		p.setCursor(CursorDefault)
	}
}

func (p *PointerHub) setCursor(c Cursor) {
	if p.cursor == c {
		return
	}
	p.cursor = c
	if p.onShape != nil {
		p.onShape(c)
	}
}

// Move routes a pointer move to the active capture.
func (p *PointerHub) Move(x, y float32) {
	if p.active != nil {
		p.active.PointerMove(x, y)
	}
}

// Up routes a pointer release to the active capture.
func (p *PointerHub) Up(x, y float32) {
	if p.active != nil {
		p.active.PointerUp(x, y)
	}
}

// Feed forwards the pointer part of a frame's input to the active capture.
func (p *PointerHub) Feed(input *InputState) {
	if input == nil || p.active == nil {
		return
	}
	if input.MouseReleased(MouseButtonLeft) || !input.MouseDown(MouseButtonLeft) {
		p.Up(input.MouseX, input.MouseY)
		return
	}
	p.Move(input.MouseX, input.MouseY)
}

// Captured returns true while a capture is held.
func (p *PointerHub) Captured() bool {
	return p.active != nil
}

// Cursor returns the currently requested cursor.
func (p *PointerHub) Cursor() Cursor {
	return p.cursor
}

// SelectionLocked returns true while text selection is suppressed.
func (p *PointerHub) SelectionLocked() bool {
	return p.locked
}

// Side panel bounds.
const (
	SidePanelDefaultWidth = 282
	SidePanelMinWidth     = 200
	SidePanelMaxWidth     = 500
)

// SidePanel is a horizontally resizable panel docked next to the table.
// It shares the capture contract with column resizing but is otherwise
// independent of it.
type SidePanel struct {
	Width    float32
	MinWidth float32
	MaxWidth float32

	pointer PointerService
	release func()
	active  bool
	startX  float32
	startW  float32
}

// NewSidePanel creates a side panel with the default width and bounds.
func NewSidePanel(pointer PointerService) *SidePanel {
	if pointer == nil {
		pointer = NewPointerHub(nil)
	}
	return &SidePanel{
		Width:    SidePanelDefaultWidth,
		MinWidth: SidePanelMinWidth,
		MaxWidth: SidePanelMaxWidth,
		pointer:  pointer,
	}
}

// BeginResize starts a drag at pointerX.
func (sp *SidePanel) BeginResize(pointerX float32) {
	sp.endCapture()
	sp.active = true
	sp.startX = pointerX
	sp.startW = sp.Width
	sp.release = sp.pointer.Capture(CursorColumnResize, sp)
}

// PointerMove implements PointerHandler.
func (sp *SidePanel) PointerMove(x, _ float32) {
	if !sp.active {
		return
	}
	sp.Width = clampf(sp.startW+x-sp.startX, sp.MinWidth, sp.MaxWidth)
}

// PointerUp implements PointerHandler.
func (sp *SidePanel) PointerUp(_, _ float32) {
	sp.EndResize()
}

// EndResize finishes the drag. Does nothing when no drag is active.
func (sp *SidePanel) EndResize() {
	if !sp.active {
		return
	}
	sp.active = false
	sp.endCapture()
}

// IsResizing returns true while a drag is active.
func (sp *SidePanel) IsResizing() bool {
	return sp.active
}

// Close releases any capture still held.
func (sp *SidePanel) Close() {
	sp.active = false
	sp.endCapture()
}

func (sp *SidePanel) endCapture() {
	if sp.release != nil {
		sp.release()
		sp.release = nil
	}
}
