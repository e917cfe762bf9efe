package vtable

import "github.com/pkg/errors"

// ClipboardProvider abstracts system clipboard access.
// Implement this interface with platform-specific clipboard APIs.
//
// For GLFW:
//
//	type GLFWClipboard struct {
//	    window *glfw.Window
//	}
//
//	func (c *GLFWClipboard) SetText(text string) error {
//	    c.window.SetClipboardString(text)
//	    return nil
//	}
type ClipboardProvider interface {
	// SetText copies text to the system clipboard.
	SetText(text string) error
}

// ErrNoClipboard is returned when copying without a configured clipboard.
var ErrNoClipboard = errors.New("no clipboard provider configured")

// ClipboardFunc adapts a plain function to ClipboardProvider.
type ClipboardFunc func(text string) error

// SetText implements ClipboardProvider.
func (f ClipboardFunc) SetText(text string) error {
	return f(text)
}

// MemoryClipboard keeps the last copied text in memory.
// Used in headless runs where no system clipboard exists.
type MemoryClipboard struct {
	Text string
}

// SetText implements ClipboardProvider.
func (c *MemoryClipboard) SetText(text string) error {
	c.Text = text
	return nil
}

// copyText writes text through cp.
func copyText(cp ClipboardProvider, text string) error {
	if cp == nil {
		return ErrNoClipboard
	}
	return errors.Wrap(cp.SetText(text), "copy to clipboard")
}
