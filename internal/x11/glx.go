package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/glx"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	glxExtensionsName = 3 // GLX_EXTENSIONS for QueryServerString

	// X_GLXvop_SwapIntervalSGI
	vendorSwapIntervalSGI = 65536
	// GLX_SWAP_INTERVAL_EXT drawable attribute
	drawableSwapInterval = 0x20F1
)

// FBConfigs fetches and decodes every framebuffer config of the default screen.
func (c *Connection) FBConfigs() ([]FBConfig, error) {
	reply, err := glx.GetFBConfigs(c.XUtil.Conn(), c.Screen).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get GLX fbconfigs: %w", err)
	}
	return ParseFBConfigs(reply.NumFbConfigs, reply.NumProperties, reply.PropertyList), nil
}

// Extensions returns the server's GLX extension string. The string is
// fetched once per connection.
func (c *Connection) Extensions() (string, error) {
	if c.extensions != "" {
		return c.extensions, nil
	}
	reply, err := glx.QueryServerString(c.XUtil.Conn(), c.Screen, glxExtensionsName).Reply()
	if err != nil {
		return "", fmt.Errorf("failed to query GLX extensions: %w", err)
	}
	c.extensions = reply.String
	return c.extensions, nil
}

// CreateContextAttribs sends an unchecked CreateContextAttribsARB request.
// attribs is a zero-terminated key/value list. A rejected request surfaces
// as an asynchronous error through the connection's error handler, exactly
// like Xlib reports it, so callers must trap and Sync.
func (c *Connection) CreateContextAttribs(fbconfig uint32, share uint32, direct bool, attribs []int32) (uint32, error) {
	ctx, err := glx.NewContextId(c.XUtil.Conn())
	if err != nil {
		return 0, fmt.Errorf("failed to allocate context id: %w", err)
	}

	pairs := attribPairs(attribs)
	glx.CreateContextAttribsARB(c.XUtil.Conn(), ctx, glx.Fbconfig(fbconfig), c.Screen,
		glx.Context(share), direct, uint32(len(pairs)/2), pairs)
	return uint32(ctx), nil
}

// MakeCurrent binds ctx to drawable. Passing zero for both releases the
// current context.
func (c *Connection) MakeCurrent(drawable xproto.Window, ctx uint32) error {
	reply, err := glx.MakeCurrent(c.XUtil.Conn(), glx.Drawable(drawable), glx.Context(ctx), c.contextTag).Reply()
	if err != nil {
		return fmt.Errorf("glx MakeCurrent failed: %w", err)
	}
	if ctx == 0 {
		c.contextTag = 0
		return nil
	}
	c.contextTag = reply.ContextTag
	return nil
}

// DestroyContext frees a context id.
func (c *Connection) DestroyContext(ctx uint32) {
	glx.DestroyContext(c.XUtil.Conn(), glx.Context(ctx))
}

// SwapBuffers presents the back buffer of drawable.
func (c *Connection) SwapBuffers(drawable xproto.Window) {
	glx.SwapBuffers(c.XUtil.Conn(), c.contextTag, glx.Drawable(drawable))
}

// SwapIntervalEXT sets the swap interval as a drawable attribute
// (GLX_EXT_swap_control).
func (c *Connection) SwapIntervalEXT(drawable xproto.Window, interval int) {
	glx.ChangeDrawableAttributes(c.XUtil.Conn(), glx.Drawable(drawable), 1,
		[]uint32{drawableSwapInterval, uint32(interval)})
}

// GLX error codes returned by the legacy swap interval calls.
const (
	glxBadContext = 5
	glxBadValue   = 6
)

// SwapIntervalSGI sets the swap interval of the current context through the
// GLX_SGI_swap_control vendor request. It returns a GLX error code, zero on
// success. SGI does not allow turning the wait off, so zero is rejected.
func (c *Connection) SwapIntervalSGI(interval int) int {
	if rc := legacyIntervalCode(c.contextTag, interval, 1); rc != 0 {
		return rc
	}
	c.sendSwapInterval(interval)
	return 0
}

// SwapIntervalMESA is the GLX_MESA_swap_control form. It accepts zero, which
// disables the wait.
func (c *Connection) SwapIntervalMESA(interval int) int {
	if rc := legacyIntervalCode(c.contextTag, interval, 0); rc != 0 {
		return rc
	}
	c.sendSwapInterval(interval)
	return 0
}

func legacyIntervalCode(tag glx.ContextTag, interval, min int) int {
	if tag == 0 {
		return glxBadContext
	}
	if interval < min {
		return glxBadValue
	}
	return 0
}

func (c *Connection) sendSwapInterval(interval int) {
	buf := make([]byte, 4)
	xgb.Put32(buf, uint32(interval))
	glx.VendorPrivate(c.XUtil.Conn(), vendorSwapIntervalSGI, c.contextTag, buf)
}

func attribPairs(attribs []int32) []uint32 {
	pairs := make([]uint32, 0, len(attribs))
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == 0 {
			break
		}
		pairs = append(pairs, uint32(attribs[i]), uint32(attribs[i+1]))
	}
	return pairs
}
