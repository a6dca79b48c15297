//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/glxwin/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxDriver opens X11 connections with GLX initialized.
type LinuxDriver struct {
	// DisplayName overrides the DISPLAY environment variable when set.
	DisplayName string
}

var _ Driver = (*LinuxDriver)(nil)

// NewLinuxDriver creates a driver for the named X display ("" = $DISPLAY).
func NewLinuxDriver(displayName string) *LinuxDriver {
	return &LinuxDriver{DisplayName: displayName}
}

// OpenDisplay connects to the X server.
func (d *LinuxDriver) OpenDisplay() (Display, error) {
	conn, err := x11.NewConnection(d.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return newLinuxDisplay(conn), nil
}

// LinuxDisplay wraps an X11 connection behind the platform Display interface.
type LinuxDisplay struct {
	conn           *x11.Connection
	handler        ErrorHandler
	defaultHandler xgbutil.ErrorHandlerFun
	procs          map[string]Proc
}

var _ Display = (*LinuxDisplay)(nil)

func newLinuxDisplay(conn *x11.Connection) *LinuxDisplay {
	d := &LinuxDisplay{conn: conn}
	d.defaultHandler = conn.SetErrorHandler(nil)
	conn.SetErrorHandler(d.defaultHandler)
	d.procs = d.resolveProcs()
	return d
}

// Conn exposes the underlying connection for X11-specific callers.
func (d *LinuxDisplay) Conn() *x11.Connection {
	return d.conn
}

func (d *LinuxDisplay) DefaultRootWindow() WindowID {
	return WindowID(d.conn.Root)
}

func (d *LinuxDisplay) CreateSimpleWindow(parent WindowID, bounds Rect) WindowID {
	win, err := d.conn.CreateSimpleWindow(xproto.Window(parent), bounds.X, bounds.Y, bounds.Width, bounds.Height)
	if err != nil {
		d.report(err)
		return 0
	}
	return WindowID(win)
}

func (d *LinuxDisplay) DestroyWindow(window WindowID) {
	d.conn.DestroyWindow(xproto.Window(window))
}

func (d *LinuxDisplay) MapWindow(window WindowID) {
	d.conn.MapWindow(xproto.Window(window))
}

func (d *LinuxDisplay) MapRaised(window WindowID) {
	d.conn.MapRaised(xproto.Window(window))
}

func (d *LinuxDisplay) UnmapWindow(window WindowID) {
	d.conn.UnmapWindow(xproto.Window(window))
}

func (d *LinuxDisplay) Geometry(window WindowID) (Rect, error) {
	x, y, w, h, err := d.conn.Geometry(xproto.Window(window))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (d *LinuxDisplay) MapState(window WindowID) (MapState, error) {
	state, err := d.conn.MapState(xproto.Window(window))
	if err != nil {
		return MapStateUnmapped, err
	}
	switch state {
	case xproto.MapStateViewable:
		return MapStateViewable, nil
	case xproto.MapStateUnviewable:
		return MapStateUnviewable, nil
	default:
		return MapStateUnmapped, nil
	}
}

func (d *LinuxDisplay) SetWMName(window WindowID, title string) error {
	return d.conn.SetTitle(xproto.Window(window), title)
}

func (d *LinuxDisplay) Flush() {
	d.conn.DispatchErrors()
}

func (d *LinuxDisplay) Sync() {
	d.conn.Sync()
}

// SetErrorHandler installs handler for asynchronous protocol errors. A nil
// handler restores the connection's default, which logs to stderr.
func (d *LinuxDisplay) SetErrorHandler(handler ErrorHandler) ErrorHandler {
	prev := d.handler
	d.handler = handler
	if handler == nil {
		d.conn.SetErrorHandler(d.defaultHandler)
		return prev
	}
	d.conn.SetErrorHandler(func(err xgb.Error) {
		handler(ErrorEvent{
			Sequence: err.SequenceId(),
			BadID:    err.BadId(),
			Message:  err.Error(),
		})
	})
	return prev
}

func (d *LinuxDisplay) ChooseFBConfig(req FBConfigRequest) []FBConfig {
	all, err := d.conn.FBConfigs()
	if err != nil {
		d.report(err)
		return nil
	}
	chosen := x11.ChooseFBConfigs(all, x11.FBConfigCriteria{
		Renderable:   req.Renderable,
		Red:          req.Red,
		Green:        req.Green,
		Blue:         req.Blue,
		Depth:        req.Depth,
		DoubleBuffer: req.DoubleBuffer,
	})

	configs := make([]FBConfig, len(chosen))
	for i, c := range chosen {
		configs[i] = FBConfig{
			ID:           c.ID,
			VisualID:     c.VisualID,
			Red:          c.Red,
			Green:        c.Green,
			Blue:         c.Blue,
			Alpha:        c.Alpha,
			Depth:        c.Depth,
			DoubleBuffer: c.DoubleBuffer,
			Renderable:   c.Renderable,
		}
	}
	return configs
}

func (d *LinuxDisplay) QueryExtensionsString() string {
	ext, err := d.conn.Extensions()
	if err != nil {
		d.report(err)
		return ""
	}
	return ext
}

func (d *LinuxDisplay) GetProcAddress(name string) Proc {
	return d.procs[name]
}

func (d *LinuxDisplay) MakeCurrent(window WindowID, ctx ContextID) error {
	return d.conn.MakeCurrent(xproto.Window(window), uint32(ctx))
}

func (d *LinuxDisplay) DestroyContext(ctx ContextID) {
	d.conn.DestroyContext(uint32(ctx))
}

func (d *LinuxDisplay) SwapBuffers(window WindowID) {
	d.conn.SwapBuffers(xproto.Window(window))
}

func (d *LinuxDisplay) Close() {
	d.conn.Close()
}

// resolveProcs builds the entry point table for this connection.
func (d *LinuxDisplay) resolveProcs() map[string]Proc {
	return d.procsFor(d.QueryExtensionsString())
}

// procsFor maps the advertised extensions to entry points. Like libGL,
// glXSwapIntervalEXT resolves whether or not the server advertises
// GLX_EXT_swap_control; callers check the extension string themselves.
// Context creation always sends a profile mask, so it needs the profile
// extension as well.
func (d *LinuxDisplay) procsFor(ext string) map[string]Proc {
	procs := map[string]Proc{
		ProcSwapIntervalEXT: SwapIntervalEXTFunc(func(window WindowID, interval int) {
			d.conn.SwapIntervalEXT(xproto.Window(window), interval)
		}),
	}

	if HasExtension(ext, ExtCreateContext) && HasExtension(ext, ExtCreateContextProf) {
		procs[ProcCreateContextAttribsARB] = CreateContextAttribsFunc(
			func(cfg FBConfig, share ContextID, direct bool, attribs []int32) ContextID {
				ctx, err := d.conn.CreateContextAttribs(cfg.ID, uint32(share), direct, attribs)
				if err != nil {
					d.report(err)
					return 0
				}
				return ContextID(ctx)
			})
	}

	if HasExtension(ext, ExtSwapControlSGI) {
		procs[ProcSwapIntervalSGI] = SwapIntervalFunc(func(interval int) int {
			return d.conn.SwapIntervalSGI(interval)
		})
	}
	if HasExtension(ext, ExtSwapControlMESA) {
		procs[ProcSwapIntervalMESA] = SwapIntervalFunc(func(interval int) int {
			return d.conn.SwapIntervalMESA(interval)
		})
	}
	return procs
}

// report routes a synchronous failure through the installed error handler
// so callers see one error path regardless of how the request failed.
func (d *LinuxDisplay) report(err error) {
	if d.handler != nil {
		d.handler(ErrorEvent{Message: err.Error()})
		return
	}
	if d.defaultHandler != nil {
		if xerr, ok := err.(xgb.Error); ok {
			d.defaultHandler(xerr)
			return
		}
	}
	xgbutil.Logger.Println(err)
}
