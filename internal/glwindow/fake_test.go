package glwindow

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/platform"
)

type fakeDriver struct {
	openErr error
	opened  int
	display *fakeDisplay
}

func (d *fakeDriver) OpenDisplay() (platform.Display, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opened++
	return d.display, nil
}

type fakeWindow struct {
	bounds platform.Rect
	state  platform.MapState
	raised bool
	title  string
}

// fakeDisplay simulates a display with an asynchronous error queue that is
// only delivered on Sync or Flush.
type fakeDisplay struct {
	calls []string

	configs    []platform.FBConfig
	extensions string
	procs      map[string]platform.Proc

	// createResult is returned by glXCreateContextAttribsARB; createError
	// queues an asynchronous error alongside it.
	createResult platform.ContextID
	createError  bool
	lastAttribs  []int32
	lastDirect   bool

	failWindowCreate bool
	geometryErr      error
	makeCurrentErr   error
	titleErr         error

	windows    map[platform.WindowID]*fakeWindow
	nextWindow platform.WindowID

	handler platform.ErrorHandler
	pending []platform.ErrorEvent

	current          platform.ContextID
	makeCurrentCalls int
	clearCalls       int
	swapBuffers      int
	swapIntervalEXT  []int
	swapIntervalOld  []int
	swapIntervalMESA []int
	destroyedCtx     []platform.ContextID
	destroyedWin     []platform.WindowID
	closed           int
	flushes          int
	syncs            int
	handlerAtRequest platform.ErrorHandler
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{
		configs: []platform.FBConfig{
			{ID: 0x21, VisualID: 0x41, Red: 8, Green: 8, Blue: 8, Alpha: 8, DoubleBuffer: true, Renderable: true},
		},
		extensions:   "GLX_ARB_create_context GLX_ARB_create_context_profile GLX_EXT_swap_control GLX_SGI_swap_control",
		createResult: 0x600001,
		windows:      map[platform.WindowID]*fakeWindow{},
		nextWindow:   0x400001,
	}
	d.procs = map[string]platform.Proc{
		platform.ProcCreateContextAttribsARB: platform.CreateContextAttribsFunc(d.createContext),
		platform.ProcSwapIntervalEXT: platform.SwapIntervalEXTFunc(func(_ platform.WindowID, interval int) {
			d.calls = append(d.calls, "SwapIntervalEXT")
			d.swapIntervalEXT = append(d.swapIntervalEXT, interval)
		}),
		platform.ProcSwapIntervalSGI: platform.SwapIntervalFunc(func(interval int) int {
			d.calls = append(d.calls, "SwapIntervalLegacy")
			d.swapIntervalOld = append(d.swapIntervalOld, interval)
			return 0
		}),
	}
	return d
}

func (d *fakeDisplay) createContext(cfg platform.FBConfig, share platform.ContextID, direct bool, attribs []int32) platform.ContextID {
	d.calls = append(d.calls, "CreateContextAttribs")
	d.handlerAtRequest = d.handler
	d.lastAttribs = append([]int32(nil), attribs...)
	d.lastDirect = direct
	if d.createError {
		d.pending = append(d.pending, platform.ErrorEvent{Sequence: 7, Message: "GLXBadFBConfig"})
	}
	return d.createResult
}

func (d *fakeDisplay) deliver() {
	pending := d.pending
	d.pending = nil
	for _, ev := range pending {
		if d.handler != nil {
			d.handler(ev)
		}
	}
}

func (d *fakeDisplay) DefaultRootWindow() platform.WindowID { return 1 }

func (d *fakeDisplay) CreateSimpleWindow(parent platform.WindowID, bounds platform.Rect) platform.WindowID {
	d.calls = append(d.calls, "CreateSimpleWindow")
	if d.failWindowCreate {
		return 0
	}
	id := d.nextWindow
	d.nextWindow++
	d.windows[id] = &fakeWindow{bounds: bounds}
	return id
}

func (d *fakeDisplay) DestroyWindow(window platform.WindowID) {
	d.calls = append(d.calls, "DestroyWindow")
	d.destroyedWin = append(d.destroyedWin, window)
	delete(d.windows, window)
}

func (d *fakeDisplay) win(window platform.WindowID) *fakeWindow {
	w, ok := d.windows[window]
	if !ok {
		w = &fakeWindow{bounds: platform.Rect{Width: 800, Height: 600}}
		d.windows[window] = w
	}
	return w
}

func (d *fakeDisplay) MapWindow(window platform.WindowID) {
	d.calls = append(d.calls, "MapWindow")
	d.win(window).state = platform.MapStateViewable
}

func (d *fakeDisplay) MapRaised(window platform.WindowID) {
	d.calls = append(d.calls, "MapRaised")
	w := d.win(window)
	w.state = platform.MapStateViewable
	w.raised = true
}

func (d *fakeDisplay) UnmapWindow(window platform.WindowID) {
	d.calls = append(d.calls, "UnmapWindow")
	w := d.win(window)
	w.state = platform.MapStateUnmapped
	w.raised = false
}

func (d *fakeDisplay) Geometry(window platform.WindowID) (platform.Rect, error) {
	if d.geometryErr != nil {
		return platform.Rect{}, d.geometryErr
	}
	return d.win(window).bounds, nil
}

func (d *fakeDisplay) MapState(window platform.WindowID) (platform.MapState, error) {
	return d.win(window).state, nil
}

func (d *fakeDisplay) SetWMName(window platform.WindowID, title string) error {
	d.calls = append(d.calls, "SetWMName")
	if d.titleErr != nil {
		return d.titleErr
	}
	d.win(window).title = title
	return nil
}

func (d *fakeDisplay) Flush() {
	d.flushes++
	d.deliver()
}

func (d *fakeDisplay) Sync() {
	d.syncs++
	d.deliver()
}

func (d *fakeDisplay) SetErrorHandler(handler platform.ErrorHandler) platform.ErrorHandler {
	prev := d.handler
	d.handler = handler
	return prev
}

func (d *fakeDisplay) ChooseFBConfig(req platform.FBConfigRequest) []platform.FBConfig {
	d.calls = append(d.calls, "ChooseFBConfig")
	var out []platform.FBConfig
	for _, c := range d.configs {
		if req.Renderable && !c.Renderable {
			continue
		}
		if c.DoubleBuffer != req.DoubleBuffer {
			continue
		}
		if c.Red < req.Red || c.Green < req.Green || c.Blue < req.Blue || c.Depth < req.Depth {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (d *fakeDisplay) QueryExtensionsString() string { return d.extensions }

func (d *fakeDisplay) GetProcAddress(name string) platform.Proc { return d.procs[name] }

func (d *fakeDisplay) MakeCurrent(window platform.WindowID, ctx platform.ContextID) error {
	if d.makeCurrentErr != nil {
		return d.makeCurrentErr
	}
	if ctx == 0 {
		d.calls = append(d.calls, "ClearCurrent")
		d.clearCalls++
	} else {
		d.calls = append(d.calls, "MakeCurrent")
		d.makeCurrentCalls++
	}
	d.current = ctx
	return nil
}

func (d *fakeDisplay) DestroyContext(ctx platform.ContextID) {
	d.calls = append(d.calls, "DestroyContext")
	d.destroyedCtx = append(d.destroyedCtx, ctx)
}

func (d *fakeDisplay) SwapBuffers(window platform.WindowID) {
	d.calls = append(d.calls, "SwapBuffers")
	d.swapBuffers++
}

func (d *fakeDisplay) Close() {
	d.calls = append(d.calls, "Close")
	d.closed++
}

func (d *fakeDisplay) count(call string) int {
	n := 0
	for _, c := range d.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (d *fakeDisplay) resetCalls() {
	d.calls = nil
}

var errNoDisplay = errors.New("cannot open display")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	driver  *fakeDriver
	display *fakeDisplay
	cfg     *config.Config
	win     *Window
}

func newTestEnv() *testEnv {
	display := newFakeDisplay()
	driver := &fakeDriver{display: display}
	cfg := config.DefaultConfig()
	return &testEnv{
		driver:  driver,
		display: display,
		cfg:     cfg,
		win:     New(Options{Driver: driver, Settings: cfg, Logger: quietLogger()}),
	}
}

// bindWindow binds a display and window without running context init.
func (e *testEnv) bindWindow() {
	e.win.display = e.display
	e.win.window = 0x400100
	e.win.managed = true
}

func (e *testEnv) String() string {
	return fmt.Sprintf("calls=%v", e.display.calls)
}
