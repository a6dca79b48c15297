package glwindow

import (
	"sync"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/platform"
)

// trapMu serializes context creation. The display error handler slot is
// shared, so only one trap may be installed at a time.
var trapMu sync.Mutex

// errorTrap replaces the display error handler and records whether any
// asynchronous error arrived while installed.
type errorTrap struct {
	display platform.Display
	prev    platform.ErrorHandler
	tripped bool
	event   platform.ErrorEvent
}

func installErrorTrap(display platform.Display) *errorTrap {
	t := &errorTrap{display: display}
	// Drain anything already queued so earlier failures cannot trip the trap.
	display.Sync()
	t.prev = display.SetErrorHandler(t.handle)
	return t
}

func (t *errorTrap) handle(ev platform.ErrorEvent) {
	if !t.tripped {
		t.event = ev
	}
	t.tripped = true
}

// release delivers deferred errors to the trap, then restores the previous
// handler.
func (t *errorTrap) release() {
	t.display.Sync()
	t.display.SetErrorHandler(t.prev)
}

// CreateContext creates a core-profile GL context of the given version on the
// bound window. The context is not made current.
func (w *Window) CreateContext(major, minor int) error {
	if w.display == nil || w.window == 0 {
		return recoverable("create context: no display or window bound")
	}
	if w.context != 0 {
		return recoverable("create context: context already exists")
	}

	configs := w.display.ChooseFBConfig(platform.FBConfigRequest{
		Renderable:   true,
		Red:          8,
		Green:        8,
		Blue:         8,
		Depth:        0,
		DoubleBuffer: true,
	})
	if len(configs) == 0 {
		return recoverable("create context: no suitable framebuffer configuration")
	}

	proc, err := w.GetProcAddress(platform.ProcCreateContextAttribsARB, false)
	if err != nil {
		return err
	}
	create, ok := proc.(platform.CreateContextAttribsFunc)
	if !ok || create == nil {
		return recoverable("create context: %s has unexpected type %T", platform.ProcCreateContextAttribsARB, proc)
	}

	ctx, trap := w.requestContext(create, configs[0], contextAttribs(major, minor))
	if ctx == 0 || trap.tripped {
		if trap.tripped {
			w.logger.Debug("context request rejected",
				"major", major, "minor", minor,
				"error", trap.event.Message)
		}
		return recoverable("create context: driver does not support OpenGL %d.%d core profile", major, minor)
	}

	w.context = ctx
	w.logger.Debug("created context",
		"major", major, "minor", minor,
		"fbconfig", configs[0].ID,
		"debug", debugContext)
	return nil
}

func (w *Window) requestContext(create platform.CreateContextAttribsFunc, cfg platform.FBConfig, attribs []int32) (platform.ContextID, *errorTrap) {
	trapMu.Lock()
	defer trapMu.Unlock()

	trap := installErrorTrap(w.display)
	defer trap.release()

	// Indirect, so the server's driver validates the version and profile.
	return create(cfg, 0, false, attribs), trap
}

// contextAttribs builds the zero-terminated attribute list for a core-profile
// context. The debug flag is only requested in gldebug builds.
func contextAttribs(major, minor int) []int32 {
	attribs := []int32{
		platform.ContextMajorVersionARB, int32(major),
		platform.ContextMinorVersionARB, int32(minor),
	}
	if debugContext {
		attribs = append(attribs, platform.ContextFlagsARB, platform.ContextDebugBitARB)
	}
	attribs = append(attribs,
		platform.ContextProfileMaskARB, platform.ContextCoreProfileBitARB,
		platform.AttribNone,
	)
	return attribs
}

// AttachContext makes the context current on the bound window. It does
// nothing when already attached.
func (w *Window) AttachContext() error {
	if w.attached {
		return nil
	}
	if w.display == nil || w.context == 0 {
		return recoverable("attach context: no context")
	}
	if err := w.display.MakeCurrent(w.window, w.context); err != nil {
		return recoverable("attach context: %v", err)
	}
	w.attached = true
	return nil
}

// DetachContext releases the current context. It does nothing when already
// detached.
func (w *Window) DetachContext() {
	if !w.attached {
		return
	}
	if w.display != nil {
		if err := w.display.MakeCurrent(0, 0); err != nil {
			w.logger.Warn("failed to release context", "error", err)
		}
	}
	w.attached = false
}

func (w *Window) IsContextAttached() bool {
	return w.attached
}

// GetProcAddress resolves a driver entry point. Missing optional entry points
// yield nil; missing required ones are an error.
func (w *Window) GetProcAddress(name string, optional bool) (platform.Proc, error) {
	var proc platform.Proc
	if w.display != nil {
		proc = w.display.GetProcAddress(name)
	}
	if proc != nil {
		return proc, nil
	}

	if w.settings.Bool(config.KeyDebugOpenGL) {
		w.logger.Warn("entry point not available", "name", name, "optional", optional)
	}
	if !optional {
		return nil, recoverable("entry point %s not available", name)
	}
	return nil, nil
}
