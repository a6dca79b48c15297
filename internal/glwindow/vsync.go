package glwindow

import "github.com/1broseidon/glxwin/internal/platform"

// VsyncCapability is the swap-control mechanism detected after context
// creation.
type VsyncCapability int

const (
	VsyncNone VsyncCapability = iota
	// VsyncExtended is GLX_EXT_swap_control, applied per drawable.
	VsyncExtended
	// VsyncLegacy is GLX_MESA_swap_control or GLX_SGI_swap_control, applied
	// to the current context.
	VsyncLegacy
)

func (c VsyncCapability) String() string {
	switch c {
	case VsyncNone:
		return "none"
	case VsyncExtended:
		return "extended"
	case VsyncLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// populateSwapControl resolves the swap-interval entry points and picks one
// capability, preferring the extended form.
func (w *Window) populateSwapControl() {
	w.resetSwapControl()

	var ext platform.SwapIntervalEXTFunc
	if proc, _ := w.GetProcAddress(platform.ProcSwapIntervalEXT, true); proc != nil {
		ext, _ = proc.(platform.SwapIntervalEXTFunc)
	}

	var legacy platform.SwapIntervalFunc
	proc, _ := w.GetProcAddress(platform.ProcSwapIntervalMESA, true)
	if proc == nil {
		proc, _ = w.GetProcAddress(platform.ProcSwapIntervalSGI, true)
	}
	if proc != nil {
		legacy, _ = proc.(platform.SwapIntervalFunc)
	}

	extensions := w.display.QueryExtensionsString()
	switch {
	case ext != nil && platform.HasExtension(extensions, platform.ExtSwapControlEXT):
		w.vsyncCap = VsyncExtended
		w.swapIntervalEXT = ext
	case legacy != nil:
		w.vsyncCap = VsyncLegacy
		w.swapIntervalLegacy = legacy
	}
	w.logger.Debug("swap control", "capability", w.vsyncCap.String())
}

func (w *Window) resetSwapControl() {
	w.vsyncCap = VsyncNone
	w.swapIntervalEXT = nil
	w.swapIntervalLegacy = nil
}

// SetVSync requests a new swap interval (0 = no wait, N = wait N frames).
// It may be called from any goroutine; the interval is applied by the next
// Flip.
func (w *Window) SetVSync(interval int) {
	if interval < 0 {
		interval = 0
	}
	w.vsync.Store(int32(interval))
	w.vsyncChangeRequested.Store(true)
}

// SetSwapInterval applies the requested interval through the detected
// capability. A missing capability is reported and otherwise ignored.
func (w *Window) SetSwapInterval() {
	interval := int(w.vsync.Load())
	switch w.vsyncCap {
	case VsyncExtended:
		w.swapIntervalEXT(w.window, interval)
	case VsyncLegacy:
		if rc := w.swapIntervalLegacy(interval); rc != 0 {
			w.logger.Warn("legacy swap interval rejected", "interval", interval, "code", rc)
		}
	default:
		w.logger.Warn("no swap control available, vsync request dropped", "interval", interval)
	}
}

// Flip presents the back buffer, first applying any pending vsync change.
func (w *Window) Flip() error {
	if w.display == nil || w.window == 0 {
		return recoverable("flip: no window bound")
	}
	if w.vsyncChangeRequested.Swap(false) {
		w.SetSwapInterval()
	}
	w.display.SwapBuffers(w.window)
	return nil
}
