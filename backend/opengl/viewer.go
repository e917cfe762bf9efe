package opengl

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/go-theft-auto/vtable"
)

// margin around the table inside the window.
const margin = 8

// Config describes the viewer window.
type Config struct {
	Title  string
	Width  int
	Height int
	Style  vtable.Style
	Logger *slog.Logger

	// Setup runs once the table view exists, before the first frame.
	Setup func(tv *vtable.TableView)
}

// Run opens a window showing a table built from opts and blocks until the
// window closes or ctx is done. It must be called from the main thread.
func Run(ctx context.Context, opts vtable.Options, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw init")
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "gl init")
	}

	fbw, fbh := window.GetFramebufferSize()
	renderer, err := NewRenderer(fbw, fbh)
	if err != nil {
		return err
	}
	defer renderer.Delete()

	shaper := NewCursorShaper(window)
	defer shaper.Destroy()

	input := NewGLFWInputAdapter(window)
	toasts := &vtable.ToastState{}
	tv := vtable.NewTableView(opts,
		vtable.WithClipboard(NewClipboard(window)),
		vtable.WithNotifier(toasts),
		vtable.WithPointerService(vtable.NewPointerHub(shaper.Apply)),
		vtable.WithLogger(logger),
	)
	defer tv.Close()
	if cfg.Setup != nil {
		cfg.Setup(tv)
	}

	origin := vtable.Vec2{X: margin, Y: margin}
	last := time.Now()
	logger.Debug("viewer started", "rows", len(opts.Data), "columns", len(tv.Columns()))

	for !window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		in := input.Update()
		glfw.PollEvents()

		now := time.Now()
		toasts.Update(now.Sub(last))
		last = now

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		frame := tv.Compose()
		layout := vtable.LayoutFrame(frame, origin, cfg.Style)

		// The body fills the window below the header.
		if body := float32(h) - (layout.Body.Y - origin.Y) - 2*margin; body > 0 && body != frame.Height && !frame.Empty {
			o := tv.Options()
			o.Height = body
			tv.SetOptions(o)
			frame = tv.Compose()
			layout = vtable.LayoutFrame(frame, origin, cfg.Style)
		}

		vtable.HandleInput(tv, frame, layout, cfg.Style, in)
		if in.KeyPressed(vtable.KeyEscape) {
			window.SetShouldClose(true)
		}

		dl := vtable.AcquireDrawList()
		vtable.DrawTable(dl, frame, origin, cfg.Style)
		vtable.DrawToasts(dl, toasts, vtable.Vec2{X: float32(w), Y: float32(h)}, cfg.Style)
		err := renderer.Render(dl)
		vtable.ReleaseDrawList(dl)
		if err != nil {
			return errors.Wrap(err, "render")
		}

		window.SwapBuffers()
	}
	return nil
}
