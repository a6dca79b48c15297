package glwindow

import (
	"errors"
	"testing"

	"github.com/1broseidon/glxwin/internal/platform"
)

func TestCreateContext_NoFBConfig(t *testing.T) {
	versions := []struct{ major, minor int }{
		{2, 1}, {3, 0}, {3, 3}, {4, 0}, {4, 5}, {4, 6},
	}
	for _, v := range versions {
		env := newTestEnv()
		env.display.configs = nil
		env.bindWindow()

		err := env.win.CreateContext(v.major, v.minor)
		if !errors.Is(err, ErrRecoverable) {
			t.Fatalf("%d.%d: expected ErrRecoverable, got %v", v.major, v.minor, err)
		}
		if env.win.HasContext() {
			t.Fatalf("%d.%d: context must not be set", v.major, v.minor)
		}
		if env.win.IsContextAttached() {
			t.Fatalf("%d.%d: attachment state must not change", v.major, v.minor)
		}
		if env.display.count("CreateContextAttribs") != 0 {
			t.Fatalf("%d.%d: no context request expected", v.major, v.minor)
		}
	}
}

func TestCreateContext_FBConfigFilter(t *testing.T) {
	env := newTestEnv()
	env.display.configs = []platform.FBConfig{
		{ID: 1, Red: 8, Green: 8, Blue: 8, DoubleBuffer: false, Renderable: true},
		{ID: 2, Red: 5, Green: 6, Blue: 5, DoubleBuffer: true, Renderable: true},
		{ID: 3, Red: 8, Green: 8, Blue: 8, DoubleBuffer: true, Renderable: false},
	}
	env.bindWindow()

	if err := env.win.CreateContext(3, 3); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable for unsuitable configs, got %v", err)
	}
}

func TestCreateContext_Preconditions(t *testing.T) {
	env := newTestEnv()
	if err := env.win.CreateContext(3, 3); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable without display, got %v", err)
	}

	env.win.display = env.display
	if err := env.win.CreateContext(3, 3); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable without window, got %v", err)
	}
}

func TestCreateContext_MissingEntryPoint(t *testing.T) {
	env := newTestEnv()
	delete(env.display.procs, platform.ProcCreateContextAttribsARB)
	env.bindWindow()

	if err := env.win.CreateContext(3, 3); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable, got %v", err)
	}
	if env.win.HasContext() {
		t.Fatalf("context must not be set")
	}
}

func TestCreateContext_NullContext(t *testing.T) {
	env := newTestEnv()
	env.display.createResult = 0
	env.bindWindow()

	if err := env.win.CreateContext(4, 6); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable, got %v", err)
	}
}

func TestCreateContext_DeferredErrorTripsTrap(t *testing.T) {
	env := newTestEnv()
	env.display.createError = true
	env.bindWindow()

	var outer []platform.ErrorEvent
	env.display.SetErrorHandler(func(ev platform.ErrorEvent) { outer = append(outer, ev) })

	err := env.win.CreateContext(4, 6)
	if !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable, got %v", err)
	}
	if env.win.HasContext() {
		t.Fatalf("context must not be set after a trapped error")
	}
	if len(outer) != 0 {
		t.Fatalf("trapped error leaked to previous handler: %v", outer)
	}
	if env.display.handler == nil {
		t.Fatalf("previous handler not restored")
	}

	// The restored handler sees later errors again.
	env.display.pending = append(env.display.pending, platform.ErrorEvent{Message: "later"})
	env.display.Sync()
	if len(outer) != 1 {
		t.Fatalf("expected restored handler to receive later error, got %v", outer)
	}
}

func TestCreateContext_TrapInstalledDuringRequest(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()
	env.display.SetErrorHandler(nil)

	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("create context: %v", err)
	}
	if env.display.handlerAtRequest == nil {
		t.Fatalf("no error trap installed when the request was issued")
	}
	if env.display.handler != nil {
		t.Fatalf("handler not restored after request")
	}
	if env.display.syncs < 2 {
		t.Fatalf("expected a sync before and after the request, got %d", env.display.syncs)
	}
}

func TestCreateContext_EarlierErrorDoesNotTripTrap(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()
	env.display.pending = []platform.ErrorEvent{{Message: "stale"}}

	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("stale error should not fail context creation: %v", err)
	}
}

func TestCreateContext_Success(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()

	if err := env.win.CreateContext(4, 5); err != nil {
		t.Fatalf("create context: %v", err)
	}
	if !env.win.HasContext() {
		t.Fatalf("expected context")
	}
	if env.win.IsContextAttached() {
		t.Fatalf("context must not be attached by CreateContext")
	}

	if err := env.win.CreateContext(4, 5); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("second CreateContext should fail, got %v", err)
	}
}

func TestCreateContext_RequestsIndirect(t *testing.T) {
	env := newTestEnv()
	env.display.lastDirect = true
	env.bindWindow()

	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("create context: %v", err)
	}
	if env.display.lastDirect {
		t.Fatalf("context requested as direct; the server would skip version validation")
	}
}

func TestContextAttribs(t *testing.T) {
	attribs := contextAttribs(4, 1)

	if attribs[len(attribs)-1] != platform.AttribNone {
		t.Fatalf("attribs not terminated: %v", attribs)
	}
	pairs := map[int32]int32{}
	for i := 0; i+1 < len(attribs); i += 2 {
		pairs[attribs[i]] = attribs[i+1]
	}
	if pairs[platform.ContextMajorVersionARB] != 4 || pairs[platform.ContextMinorVersionARB] != 1 {
		t.Fatalf("version not requested: %v", attribs)
	}
	if pairs[platform.ContextProfileMaskARB] != platform.ContextCoreProfileBitARB {
		t.Fatalf("expected core profile only: %v", attribs)
	}
	flags, hasFlags := pairs[platform.ContextFlagsARB]
	if debugContext {
		if flags&platform.ContextDebugBitARB == 0 {
			t.Fatalf("debug build should request a debug context: %v", attribs)
		}
	} else if hasFlags {
		t.Fatalf("release build should not set context flags: %v", attribs)
	}
	if flags&platform.ContextForwardCompatibleBitARB != 0 {
		t.Fatalf("forward-compatible flag must not be requested: %v", attribs)
	}
}

func TestAttachContext_Idempotent(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()
	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("create context: %v", err)
	}

	if err := env.win.AttachContext(); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := env.win.AttachContext(); err != nil {
		t.Fatalf("second attach: %v", err)
	}
	if !env.win.IsContextAttached() {
		t.Fatalf("expected attached")
	}
	if env.display.makeCurrentCalls != 1 {
		t.Fatalf("make current calls = %d, want 1", env.display.makeCurrentCalls)
	}
}

func TestDetachContext_Idempotent(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()
	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("create context: %v", err)
	}

	env.win.DetachContext()
	if env.display.clearCalls != 0 {
		t.Fatalf("detach on detached context should not clear current")
	}

	if err := env.win.AttachContext(); err != nil {
		t.Fatalf("attach: %v", err)
	}
	env.win.DetachContext()
	env.win.DetachContext()
	if env.display.clearCalls != 1 {
		t.Fatalf("clear calls = %d, want 1", env.display.clearCalls)
	}
	if env.win.IsContextAttached() {
		t.Fatalf("expected detached")
	}

	if err := env.win.AttachContext(); err != nil {
		t.Fatalf("reattach: %v", err)
	}
	if env.display.makeCurrentCalls != 2 {
		t.Fatalf("make current calls = %d, want 2", env.display.makeCurrentCalls)
	}
}

func TestAttachContext_FailureLeavesDetached(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()
	if err := env.win.CreateContext(3, 3); err != nil {
		t.Fatalf("create context: %v", err)
	}
	env.display.makeCurrentErr = errors.New("BadMatch")

	if err := env.win.AttachContext(); !errors.Is(err, ErrRecoverable) {
		t.Fatalf("expected ErrRecoverable, got %v", err)
	}
	if env.win.IsContextAttached() {
		t.Fatalf("failed attach must not mark attached")
	}
}

func TestGetProcAddress(t *testing.T) {
	env := newTestEnv()
	env.bindWindow()

	proc, err := env.win.GetProcAddress(platform.ProcSwapIntervalEXT, false)
	if err != nil || proc == nil {
		t.Fatalf("expected resolved proc, got %v, %v", proc, err)
	}

	proc, err = env.win.GetProcAddress("glXMissing", true)
	if err != nil || proc != nil {
		t.Fatalf("optional missing proc: got %v, %v", proc, err)
	}

	env.cfg.DebugOpenGL = true
	_, err = env.win.GetProcAddress("glXMissing", false)
	if !errors.Is(err, ErrRecoverable) {
		t.Fatalf("required missing proc: expected ErrRecoverable, got %v", err)
	}
}
