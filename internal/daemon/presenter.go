package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/1broseidon/glxwin/internal/glwindow"
	"github.com/1broseidon/glxwin/internal/ipc"
	"github.com/1broseidon/glxwin/internal/platform"
)

var (
	ErrNotRunning = errors.New("presenter is not running")
	ErrTimeout    = errors.New("presenter did not respond in time")
)

// Surface is the part of glwindow.Window the presenter drives.
type Surface interface {
	Flip() error
	SetVSync(interval int)
	SwapInterval() int
	VsyncCapability() glwindow.VsyncCapability
	Show() error
	Hide() error
	SetWindowText(title string) error
	GetClientRect() platform.Rect
	MapState() (platform.MapState, error)
	WindowID() platform.WindowID
	IsManaged() bool
	IsOwned() bool
	IsContextAttached() bool
}

var _ Surface = (*glwindow.Window)(nil)

// PresenterConfig holds configuration for the presenter.
type PresenterConfig struct {
	FrameRate      int
	CommandTimeout time.Duration
	Logger         *slog.Logger
}

// Presenter owns the render goroutine. It flips the surface at a fixed rate
// and runs window commands posted from other goroutines between frames.
type Presenter struct {
	surface  Surface
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	commands chan func()
	started  atomic.Bool
	running  atomic.Bool
	frames   atomic.Uint64
	stopped  chan struct{}
}

var _ ipc.Controller = (*Presenter)(nil)

// NewPresenter creates a presenter for surface. The surface must already be
// bound with its context attached on the goroutine that will call Run.
func NewPresenter(cfg PresenterConfig, surface Surface) *Presenter {
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = 60
	}
	timeout := cfg.CommandTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Presenter{
		surface:  surface,
		interval: time.Second / time.Duration(rate),
		timeout:  timeout,
		logger:   logger,
		commands: make(chan func(), 16),
		stopped:  make(chan struct{}),
	}
}

// Run presents frames until ctx is cancelled or a flip fails. It locks the
// calling goroutine to its OS thread for the duration. A Presenter runs once.
func (p *Presenter) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return fmt.Errorf("presenter already started")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p.running.Store(true)
	defer func() {
		p.running.Store(false)
		close(p.stopped)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("presenter started",
		"interval", p.interval,
		"window", uint32(p.surface.WindowID()),
		"vsync", p.surface.VsyncCapability().String())

	for {
		select {
		case <-ctx.Done():
			p.drain()
			p.logger.Info("presenter stopped", "frames", p.frames.Load())
			return nil
		case cmd := <-p.commands:
			p.runCommand(cmd)
		case <-ticker.C:
			if err := p.surface.Flip(); err != nil {
				p.drain()
				return fmt.Errorf("flip: %w", err)
			}
			p.frames.Add(1)
		}
	}
}

// runCommand executes cmd on the render goroutine.
func (p *Presenter) runCommand(cmd func()) {
	defer func() {
		if err := recover(); err != nil {
			p.logger.Error("presenter command panic recovered", "error", err)
		}
	}()
	cmd()
}

// drain runs commands already queued so their callers are not left waiting.
func (p *Presenter) drain() {
	for {
		select {
		case cmd := <-p.commands:
			p.runCommand(cmd)
		default:
			return
		}
	}
}

// do runs fn on the render goroutine and waits for its result.
func (p *Presenter) do(fn func() error) error {
	if !p.running.Load() {
		return ErrNotRunning
	}

	result := make(chan error, 1)
	cmd := func() { result <- fn() }

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case p.commands <- cmd:
	case <-p.stopped:
		return ErrNotRunning
	case <-timer.C:
		return ErrTimeout
	}

	select {
	case err := <-result:
		return err
	case <-p.stopped:
		select {
		case err := <-result:
			return err
		default:
			return ErrNotRunning
		}
	case <-timer.C:
		return ErrTimeout
	}
}

// Frames returns the number of frames presented so far.
func (p *Presenter) Frames() uint64 {
	return p.frames.Load()
}

// Status reports the surface state. Fields that need the display are only
// filled while the presenter is running.
func (p *Presenter) Status() ipc.StatusData {
	out := make(chan ipc.StatusData, 1)
	err := p.do(func() error {
		rect := p.surface.GetClientRect()
		status := ipc.StatusData{
			WindowID:        uint32(p.surface.WindowID()),
			Managed:         p.surface.IsManaged(),
			Owned:           p.surface.IsOwned(),
			ContextAttached: p.surface.IsContextAttached(),
			VsyncCapability: p.surface.VsyncCapability().String(),
			Width:           rect.Width,
			Height:          rect.Height,
		}
		if state, err := p.surface.MapState(); err == nil {
			status.MapState = state.String()
		}
		out <- status
		return nil
	})

	var status ipc.StatusData
	if err == nil {
		status = <-out
	} else {
		p.logger.Debug("status query incomplete", "error", err)
	}
	status.SwapInterval = p.surface.SwapInterval()
	status.Frames = p.frames.Load()
	return status
}

// SetVSync requests a new swap interval. It is applied by the next flip and
// does not wait for the render goroutine.
func (p *Presenter) SetVSync(interval int) error {
	if interval < 0 {
		return fmt.Errorf("interval must be >= 0")
	}
	p.surface.SetVSync(interval)
	p.logger.Info("vsync change requested", "interval", interval)
	return nil
}

func (p *Presenter) Show() error {
	return p.do(p.surface.Show)
}

func (p *Presenter) Hide() error {
	return p.do(p.surface.Hide)
}

func (p *Presenter) SetTitle(title string) error {
	return p.do(func() error {
		return p.surface.SetWindowText(title)
	})
}
