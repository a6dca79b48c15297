package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/daemon"
	"github.com/1broseidon/glxwin/internal/glwindow"
	"github.com/1broseidon/glxwin/internal/ipc"
	"github.com/1broseidon/glxwin/internal/platform"
	"github.com/1broseidon/glxwin/internal/runtimepath"
	"github.com/1broseidon/glxwin/internal/x11"
)

func loadConfig(path string) (*config.Config, error) {
	var res *config.LoadResult
	var err error
	if path == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(path)
	}
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/glxwin/config.yaml)")
	attach := fs.String("attach", "", "Attach to an existing X window id (decimal or 0x hex) instead of creating one")
	attachTitle := fs.String("attach-title", "", "Attach to the first client window whose title contains this text")
	width := fs.Int("width", 0, "Window width (default: mode_width from config)")
	height := fs.Int("height", 0, "Window height (default: mode_height from config)")
	title := fs.String("title", "", "Window title (default: title from config)")
	vsync := fs.Int("vsync", -1, "Initial swap interval (default: vsync from config)")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glxwin run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create a window with an OpenGL core-profile context and present frames")
		fmt.Fprintln(os.Stderr, "until interrupted. Control it with 'glxwin vsync|show|hide|title'.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no positional arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *vsync >= 0 {
		if *vsync > config.MaxSwapInterval {
			fmt.Fprintf(os.Stderr, "vsync must be between 0 and %d\n", config.MaxSwapInterval)
			return 2
		}
		cfg.VSync = *vsync
	}
	if *title != "" {
		cfg.Title = *title
	}

	level := parseLogLevel(cfg.LogLevel)
	if *verbose {
		level = parseLogLevel("debug")
	}
	logger := newLogger(os.Stderr, level)

	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	win := glwindow.New(glwindow.Options{
		Driver:   platform.NewLinuxDriver(cfg.Display),
		Settings: cfg,
		Logger:   logger,
	})
	defer win.Detach()

	if *attach != "" && *attachTitle != "" {
		fmt.Fprintln(os.Stderr, "use either -attach or -attach-title, not both")
		return 2
	}
	if *attachTitle != "" {
		id, err := findWindowByTitle(cfg.Display, *attachTitle)
		if err != nil {
			logger.Error("failed to find window", "title", *attachTitle, "error", err)
			return 1
		}
		*attach = fmt.Sprintf("%#x", id)
	}

	if *attach != "" {
		id, err := parseWindowID(*attach)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		err = win.Attach(platform.WindowID(id), cfg.ManagedTitle)
		if err != nil {
			logger.Error("failed to attach", "window", id, "error", err)
			return 1
		}
		if cfg.ManagedTitle {
			if err := win.SetWindowText(cfg.Title); err != nil {
				logger.Warn("failed to set title", "error", err)
			}
		}
	} else {
		if err := win.Create(cfg.Title, *width, *height); err != nil {
			logger.Error("failed to create window", "error", err)
			return 1
		}
	}

	rect := win.GetClientRect()
	logger.Info("window ready",
		"window", uint32(win.WindowID()),
		"width", rect.Width,
		"height", rect.Height,
		"gl", fmt.Sprintf("%d.%d", cfg.GLMajor, cfg.GLMinor),
		"vsync", win.VsyncCapability().String())

	presenter := daemon.NewPresenter(daemon.PresenterConfig{
		FrameRate: cfg.FrameRate,
		Logger:    logger,
	}, win)

	socketPath, err := runtimepath.SocketPath(cfg.SocketPath)
	if err != nil {
		logger.Error("failed to resolve control socket", "error", err)
		return 1
	}
	server, err := ipc.NewServer(socketPath, presenter)
	if err != nil {
		logger.Error("failed to create control server", "error", err)
		return 1
	}
	if err := server.Start(); err != nil {
		logger.Error("failed to start control server", "error", err)
		return 1
	}
	defer server.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := presenter.Run(ctx); err != nil {
		logger.Error("presenter stopped", "error", err, "recoverable", errors.Is(err, glwindow.ErrRecoverable))
		return 1
	}
	return 0
}

// findWindowByTitle looks up a client window on its own short-lived
// connection to the named display.
func findWindowByTitle(displayName, substring string) (uint32, error) {
	conn, err := x11.NewConnection(displayName)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()

	id, err := conn.FindWindowByTitle(substring)
	if err != nil {
		return 0, err
	}
	return uint32(id), nil
}
