// Package glwindow owns one presentation surface: a display connection, the
// window it draws into and the GL context bound to that window.
//
// All methods except SetVSync are expected to be called from a single render
// goroutine, which should be locked to its OS thread while a context is
// attached.
package glwindow

import (
	"log/slog"
	"sync/atomic"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/platform"
)

// Settings is the read-only view of configuration consulted by Window.
type Settings interface {
	Int(key string) int
	Bool(key string) bool
}

// Options configures a Window.
type Options struct {
	Driver   platform.Driver
	Settings Settings
	Logger   *slog.Logger
}

// Window manages the display, window and GL context lifecycle.
type Window struct {
	driver   platform.Driver
	settings Settings
	logger   *slog.Logger

	display platform.Display
	window  platform.WindowID
	context platform.ContextID

	managed  bool
	owned    bool
	attached bool

	vsyncCap           VsyncCapability
	swapIntervalEXT    platform.SwapIntervalEXTFunc
	swapIntervalLegacy platform.SwapIntervalFunc

	vsync                atomic.Int32
	vsyncChangeRequested atomic.Bool
}

// New creates an unbound Window.
func New(opts Options) *Window {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{
		driver:   opts.Driver,
		settings: settings,
		logger:   logger,
	}
}

// Attach binds to an existing window owned by the host and brings up a GL
// context on it. When managed is false the host keeps control of the title.
func (w *Window) Attach(handle platform.WindowID, managed bool) error {
	if handle == 0 {
		return recoverable("attach: no window handle")
	}
	if w.window != 0 {
		return recoverable("attach: window %#x already bound", uint32(w.window))
	}
	if w.display == nil {
		display, err := w.openDisplay()
		if err != nil {
			return err
		}
		w.display = display
	}

	w.window = handle
	w.managed = managed
	w.owned = false
	w.logger.Debug("attached to window", "window", uint32(handle), "managed", managed)

	return w.fullContextInit()
}

// Create opens a display, creates a top-level window of the given size and
// brings up a GL context on it. Non-positive dimensions fall back to the
// configured mode size.
func (w *Window) Create(title string, width, height int) error {
	if w.window != 0 {
		return recoverable("create: window %#x already bound", uint32(w.window))
	}
	if width <= 0 || height <= 0 {
		width = w.settings.Int(config.KeyModeWidth)
		height = w.settings.Int(config.KeyModeHeight)
	}

	openedHere := false
	if w.display == nil {
		display, err := w.openDisplay()
		if err != nil {
			return err
		}
		w.display = display
		openedHere = true
	}

	root := w.display.DefaultRootWindow()
	win := w.display.CreateSimpleWindow(root, platform.Rect{Width: width, Height: height})
	if win == 0 {
		if openedHere {
			w.display.Close()
			w.display = nil
		}
		return recoverable("create: failed to create %dx%d window", width, height)
	}

	w.window = win
	w.managed = true
	w.owned = true
	w.display.MapWindow(win)
	w.logger.Debug("created window", "window", uint32(win), "width", width, "height", height)

	if title != "" {
		if err := w.SetWindowText(title); err != nil {
			return err
		}
	}

	return w.fullContextInit()
}

// Detach releases the context, destroys the window if it was created here,
// and closes the display. It is safe on a partially initialized Window and
// safe to call more than once.
func (w *Window) Detach() {
	if w.display == nil {
		w.window = 0
		w.context = 0
		w.attached = false
		w.resetSwapControl()
		return
	}

	w.DetachContext()
	if w.context != 0 {
		w.display.DestroyContext(w.context)
		w.context = 0
	}
	if w.window != 0 && w.owned {
		w.display.DestroyWindow(w.window)
	}
	w.window = 0
	w.owned = false

	w.display.Close()
	w.display = nil
	w.resetSwapControl()
	w.logger.Debug("detached")
}

// GetDisplay returns the bound display connection, or nil. Ownership stays
// with the Window.
func (w *Window) GetDisplay() platform.Display {
	return w.display
}

func (w *Window) openDisplay() (platform.Display, error) {
	if w.driver == nil {
		return nil, recoverable("no display driver configured")
	}
	display, err := w.driver.OpenDisplay()
	if err != nil {
		return nil, recoverable("open display: %v", err)
	}
	return display, nil
}

// fullContextInit creates and attaches the context, then probes swap control
// and queues the configured vsync interval for the first Flip.
func (w *Window) fullContextInit() error {
	major := w.settings.Int(config.KeyGLMajor)
	minor := w.settings.Int(config.KeyGLMinor)
	if major <= 0 {
		major, minor = config.DefaultGLMajor, config.DefaultGLMinor
	}
	if minor < 0 {
		minor = 0
	}

	if err := w.CreateContext(major, minor); err != nil {
		return err
	}
	if err := w.AttachContext(); err != nil {
		return err
	}
	w.populateSwapControl()
	w.SetVSync(w.settings.Int(config.KeyVSync))
	return nil
}
