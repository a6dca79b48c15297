package glwindow

import "github.com/1broseidon/glxwin/internal/platform"

// Fallback client area when the window system cannot be asked.
const (
	fallbackWidth  = 640
	fallbackHeight = 480
)

// GetClientRect returns the window's client area at the origin. The display
// is opened on demand; when the size cannot be queried the result is
// 640x480.
func (w *Window) GetClientRect() platform.Rect {
	fallback := platform.Rect{Width: fallbackWidth, Height: fallbackHeight}

	if w.display == nil {
		display, err := w.openDisplay()
		if err != nil {
			w.logger.Debug("client rect: display unavailable", "error", err)
			return fallback
		}
		w.display = display
	}
	if w.window == 0 {
		return fallback
	}

	geom, err := w.display.Geometry(w.window)
	if err != nil {
		w.logger.Debug("client rect: geometry query failed", "error", err)
		return fallback
	}
	return platform.Rect{Width: geom.Width, Height: geom.Height}
}

// SetWindowText sets the window title. When the host manages the title it
// succeeds without doing anything.
func (w *Window) SetWindowText(title string) error {
	if !w.managed {
		return nil
	}
	if w.display == nil || w.window == 0 {
		return recoverable("set title: no window bound")
	}
	if err := w.display.SetWMName(w.window, title); err != nil {
		w.logger.Debug("failed to set window title", "title", title, "error", err)
	}
	w.display.Flush()
	return nil
}

// Show maps and raises the window.
func (w *Window) Show() error {
	if w.display == nil || w.window == 0 {
		return recoverable("show: no window bound")
	}
	w.display.MapRaised(w.window)
	w.display.Flush()
	return nil
}

// Hide unmaps the window.
func (w *Window) Hide() error {
	if w.display == nil || w.window == 0 {
		return recoverable("hide: no window bound")
	}
	w.display.UnmapWindow(w.window)
	w.display.Flush()
	return nil
}

// HideFrame is not supported on X11.
func (w *Window) HideFrame() {}

// MapState reports the window's map state as seen by the window system.
func (w *Window) MapState() (platform.MapState, error) {
	if w.display == nil || w.window == 0 {
		return platform.MapStateUnmapped, recoverable("map state: no window bound")
	}
	state, err := w.display.MapState(w.window)
	if err != nil {
		return platform.MapStateUnmapped, recoverable("map state: %v", err)
	}
	return state, nil
}

func (w *Window) VsyncCapability() VsyncCapability { return w.vsyncCap }

// SwapInterval returns the most recently requested interval.
func (w *Window) SwapInterval() int { return int(w.vsync.Load()) }

func (w *Window) WindowID() platform.WindowID { return w.window }

func (w *Window) IsManaged() bool { return w.managed }

// IsOwned reports whether the window was created by Create and will be
// destroyed by Detach.
func (w *Window) IsOwned() bool { return w.owned }

// HasContext reports whether a context has been created.
func (w *Window) HasContext() bool { return w.context != 0 }
