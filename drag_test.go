package vtable

import "testing"

func TestSidePanel_BasicDrag(t *testing.T) {
	hub := NewPointerHub(nil)
	sp := NewSidePanel(hub)

	if sp.Width != 282 {
		t.Errorf("Expected initial width 282, got %f", sp.Width)
	}

	sp.BeginResize(300)
	if !sp.IsResizing() {
		t.Error("Expected panel to be resizing after BeginResize")
	}
	if !hub.Captured() || hub.Cursor() != CursorColumnResize || !hub.SelectionLocked() {
		t.Error("Expected capture with resize cursor and selection lock")
	}

	hub.Move(350, 0)
	if sp.Width != 332 {
		t.Errorf("Expected width 332 after drag, got %f", sp.Width)
	}

	hub.Up(350, 0)
	if sp.IsResizing() {
		t.Error("Expected panel to stop resizing after pointer release")
	}
	if hub.Captured() || hub.Cursor() != CursorDefault || hub.SelectionLocked() {
		t.Error("Expected capture released after pointer release")
	}
}

func TestSidePanel_Clamp(t *testing.T) {
	hub := NewPointerHub(nil)
	sp := NewSidePanel(hub)

	sp.BeginResize(300)

	hub.Move(-1000, 0)
	if sp.Width != SidePanelMinWidth {
		t.Errorf("Expected width clamped to %d, got %f", SidePanelMinWidth, sp.Width)
	}

	hub.Move(5000, 0)
	if sp.Width != SidePanelMaxWidth {
		t.Errorf("Expected width clamped to %d, got %f", SidePanelMaxWidth, sp.Width)
	}
}

func TestSidePanel_MoveWithoutDrag(t *testing.T) {
	sp := NewSidePanel(nil)

	sp.PointerMove(1000, 0)
	if sp.Width != SidePanelDefaultWidth {
		t.Errorf("Expected width unchanged, got %f", sp.Width)
	}

	// Ending an inactive drag is a no-op.
	sp.EndResize()
	if sp.IsResizing() {
		t.Error("Expected no active drag")
	}
}

func TestSidePanel_CloseMidDrag(t *testing.T) {
	hub := NewPointerHub(nil)
	sp := NewSidePanel(hub)

	sp.BeginResize(300)
	sp.Close()

	if hub.Captured() || hub.SelectionLocked() {
		t.Error("Expected Close to release the capture")
	}

	hub.Move(400, 0)
	if sp.Width != SidePanelDefaultWidth {
		t.Errorf("Expected width unchanged after Close, got %f", sp.Width)
	}
}

func TestPointerHub_StaleRelease(t *testing.T) {
	hub := NewPointerHub(nil)
	a := NewSidePanel(hub)
	b := NewSidePanel(hub)

	releaseA := hub.Capture(CursorColumnResize, a)
	hub.Capture(CursorColumnResize, b)

	// Releasing the replaced capture must not drop the newer one.
	releaseA()
	if !hub.Captured() {
		t.Error("Expected newer capture to survive stale release")
	}
}

func TestPointerHub_CursorCallback(t *testing.T) {
	var shapes []Cursor
	hub := NewPointerHub(func(c Cursor) { shapes = append(shapes, c) })
	sp := NewSidePanel(hub)

	sp.BeginResize(0)
	sp.EndResize()

	if len(shapes) != 2 || shapes[0] != CursorColumnResize || shapes[1] != CursorDefault {
		t.Errorf("Expected [resize, default] cursor changes, got %v", shapes)
	}
}

func TestPointerHub_Feed(t *testing.T) {
	hub := NewPointerHub(nil)
	sp := NewSidePanel(hub)
	input := NewInputState()

	input.SetMousePos(300, 10)
	input.SetMouseButton(MouseButtonLeft, true)
	sp.BeginResize(input.MouseX)

	input.Reset()
	input.SetMousePos(320, 10)
	hub.Feed(input)
	if sp.Width != 302 {
		t.Errorf("Expected width 302 while held, got %f", sp.Width)
	}

	input.Reset()
	input.SetMouseButton(MouseButtonLeft, false)
	hub.Feed(input)
	if sp.IsResizing() {
		t.Error("Expected drag to end on release")
	}
}
