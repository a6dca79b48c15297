package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// CreateSimpleWindow creates an unmapped top-level window with a black
// background and no border, the way XCreateSimpleWindow does.
func (c *Connection) CreateSimpleWindow(parent xproto.Window, x, y, width, height int) (xproto.Window, error) {
	if parent == 0 {
		parent = c.Root
	}

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate window id: %w", err)
	}

	err = win.CreateChecked(parent, x, y, width, height,
		xproto.CwBackPixel|xproto.CwBorderPixel, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}
	return win.Id, nil
}

// DestroyWindow destroys a window created on this connection.
func (c *Connection) DestroyWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Destroy()
}

// MapWindow maps a window without changing its stacking order.
func (c *Connection) MapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Map()
}

// MapRaised maps a window and raises it to the top of the stack.
func (c *Connection) MapRaised(windowID xproto.Window) {
	win := xwindow.New(c.XUtil, windowID)
	win.Map()
	win.Stack(xproto.StackModeAbove)
}

// UnmapWindow hides a window.
func (c *Connection) UnmapWindow(windowID xproto.Window) {
	xwindow.New(c.XUtil, windowID).Unmap()
}

// Geometry returns the window position relative to its parent and its size.
func (c *Connection) Geometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xwindow.RawGeometry(c.XUtil, xproto.Drawable(windowID))
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return geom.X(), geom.Y(), geom.Width(), geom.Height(), nil
}

// MapState reports the window's map state as the server sees it.
func (c *Connection) MapState(windowID xproto.Window) (byte, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return 0, err
	}
	return attrs.MapState, nil
}

// SetTitle writes both the ICCCM WM_NAME and the EWMH _NET_WM_NAME
// properties. WM_NAME is what legacy window managers read; the EWMH one
// carries UTF-8.
func (c *Connection) SetTitle(windowID xproto.Window, title string) error {
	if err := icccm.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, windowID, title); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	return nil
}

// Title returns the window title, preferring _NET_WM_NAME.
func (c *Connection) Title(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && title != "" {
		return title
	}
	title, _ := icccm.WmNameGet(c.XUtil, windowID)
	return title
}
