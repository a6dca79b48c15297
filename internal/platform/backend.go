package platform

// WindowID is a platform-neutral window identifier. Zero means no window.
type WindowID uint32

// ContextID identifies a GPU rendering context. Zero means no context.
type ContextID uint32

// Rect describes a rectangular region in window or screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// MapState reports whether a window is mapped and visible.
type MapState int

const (
	MapStateUnmapped MapState = iota
	MapStateUnviewable
	MapStateViewable
)

func (s MapState) String() string {
	switch s {
	case MapStateUnmapped:
		return "unmapped"
	case MapStateUnviewable:
		return "unviewable"
	case MapStateViewable:
		return "viewable"
	default:
		return "unknown"
	}
}

// FBConfig describes one framebuffer configuration offered by the driver.
type FBConfig struct {
	ID           uint32
	VisualID     uint32
	Red          int
	Green        int
	Blue         int
	Alpha        int
	Depth        int
	DoubleBuffer bool
	Renderable   bool
}

// FBConfigRequest selects framebuffer configurations. Color sizes are
// minimums; Depth is matched as a minimum too, with smaller depth buffers
// sorted first so a request for zero prefers configs without one.
type FBConfigRequest struct {
	Renderable   bool
	Red          int
	Green        int
	Blue         int
	Depth        int
	DoubleBuffer bool
}

// ErrorEvent is an asynchronous protocol error reported by the display.
type ErrorEvent struct {
	Sequence uint16
	BadID    uint32
	Message  string
}

// ErrorHandler receives asynchronous errors. It runs on the goroutine that
// calls Flush or Sync.
type ErrorHandler func(ErrorEvent)

// Proc is a resolved driver entry point. Callers assert it to one of the
// typed function signatures below.
type Proc any

// CreateContextAttribsFunc is glXCreateContextAttribsARB. Failures are
// reported through the display error handler and a zero ContextID.
type CreateContextAttribsFunc func(cfg FBConfig, share ContextID, direct bool, attribs []int32) ContextID

// SwapIntervalEXTFunc is glXSwapIntervalEXT.
type SwapIntervalEXTFunc func(window WindowID, interval int)

// SwapIntervalFunc is the legacy glXSwapIntervalMESA/SGI form.
type SwapIntervalFunc func(interval int) int

// Driver opens display connections.
type Driver interface {
	OpenDisplay() (Display, error)
}

// Display abstracts one connection to the window system and its GL layer.
type Display interface {
	DefaultRootWindow() WindowID
	CreateSimpleWindow(parent WindowID, bounds Rect) WindowID
	DestroyWindow(window WindowID)
	MapWindow(window WindowID)
	MapRaised(window WindowID)
	UnmapWindow(window WindowID)
	Geometry(window WindowID) (Rect, error)
	MapState(window WindowID) (MapState, error)
	SetWMName(window WindowID, title string) error

	// Flush delivers queued asynchronous errors without a round trip.
	Flush()
	// Sync performs a round trip so every prior request has been processed
	// and its errors delivered.
	Sync()
	// SetErrorHandler installs handler and returns the previous one.
	SetErrorHandler(handler ErrorHandler) ErrorHandler

	ChooseFBConfig(req FBConfigRequest) []FBConfig
	QueryExtensionsString() string
	GetProcAddress(name string) Proc
	MakeCurrent(window WindowID, ctx ContextID) error
	DestroyContext(ctx ContextID)
	SwapBuffers(window WindowID)

	Close()
}
