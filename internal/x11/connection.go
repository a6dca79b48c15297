package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection, its default screen and the GLX
// extension state tied to it.
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen uint32

	// GLX protocol version reported by the server.
	GLXMajor uint32
	GLXMinor uint32

	// Tag returned by the last successful MakeCurrent; zero when no context
	// is current on this connection.
	contextTag glx.ContextTag

	extensions string
}

// NewConnection connects to the X server named by display (DISPLAY when
// empty) and initializes the GLX extension.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	if err := glx.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("glx.Init failed: %w", err)
	}

	version, err := glx.QueryVersion(xu.Conn(), 1, 4).Reply()
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to query GLX version: %w", err)
	}

	return &Connection{
		XUtil:    xu,
		Root:     xu.RootWin(),
		Screen:   uint32(xu.Conn().DefaultScreen),
		GLXMajor: version.MajorVersion,
		GLXMinor: version.MinorVersion,
	}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// SetErrorHandler replaces the handler that receives errors from unchecked
// requests and returns the previous one.
func (c *Connection) SetErrorHandler(fun xgbutil.ErrorHandlerFun) xgbutil.ErrorHandlerFun {
	prev := xevent.ErrorHandlerGet(c.XUtil)
	xevent.ErrorHandlerSet(c.XUtil, fun)
	return prev
}

// Sync issues a round trip so every earlier request has been processed, then
// delivers any errors that came back.
func (c *Connection) Sync() {
	c.XUtil.Sync()
	c.DispatchErrors()
}

// DispatchErrors reads whatever the server has already sent and hands the
// errors to the current error handler. Events stay queued, in order, for
// whoever runs the event loop.
func (c *Connection) DispatchErrors() {
	xu := c.XUtil
	xevent.Read(xu, false)

	var (
		events []xgb.Event
		errs   []xgb.Error
	)
	for !xevent.Empty(xu) {
		ev, err := xevent.Dequeue(xu)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, ev)
	}
	for _, ev := range events {
		xevent.Enqueue(xu, ev, nil)
	}

	handler := xevent.ErrorHandlerGet(xu)
	for _, err := range errs {
		if handler != nil {
			handler(err)
		}
	}
}
