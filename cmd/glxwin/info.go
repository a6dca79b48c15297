package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/glxwin/internal/glwindow"
	"github.com/1broseidon/glxwin/internal/platform"
)

func runInfo(args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/glxwin/config.yaml)")
	probe := fs.Bool("probe", false, "Create a window and context to confirm the configured GL version")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: glxwin info [--probe]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Report GLX version, extensions, matching framebuffer configs and the")
		fmt.Fprintln(os.Stderr, "swap control mechanism that would be used.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	level := parseLogLevel(cfg.LogLevel)
	if *verbose {
		level = parseLogLevel("debug")
	}
	logger := newLogger(os.Stderr, level)
	if cfg.XAuthority != "" {
		os.Setenv("XAUTHORITY", cfg.XAuthority)
	}

	driver := platform.NewLinuxDriver(cfg.Display)
	display, err := driver.OpenDisplay()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if ld, ok := display.(*platform.LinuxDisplay); ok {
		conn := ld.Conn()
		fmt.Printf("glx_version:    %d.%d\n", conn.GLXMajor, conn.GLXMinor)
		fmt.Printf("screen:         %d\n", conn.Screen)
		if outputs, err := conn.Outputs(); err != nil {
			logger.Debug("randr unavailable", "error", err)
		} else {
			for _, o := range outputs {
				fmt.Printf("output:         %s %dx%d+%d+%d\n", o.Name, o.Width, o.Height, o.X, o.Y)
			}
		}
	}

	extensions := display.QueryExtensionsString()
	configs := display.ChooseFBConfig(platform.FBConfigRequest{
		Renderable:   true,
		Red:          8,
		Green:        8,
		Blue:         8,
		DoubleBuffer: true,
	})
	fmt.Printf("fbconfigs:      %d matching (rgb888, double buffered)\n", len(configs))
	if len(configs) > 0 {
		c := configs[0]
		fmt.Printf("best_fbconfig:  0x%x visual=0x%x rgba=%d%d%d%d depth=%d\n",
			c.ID, c.VisualID, c.Red, c.Green, c.Blue, c.Alpha, c.Depth)
	}

	fmt.Println("entry_points:")
	for _, name := range []string{
		platform.ProcCreateContextAttribsARB,
		platform.ProcSwapIntervalEXT,
		platform.ProcSwapIntervalMESA,
		platform.ProcSwapIntervalSGI,
	} {
		fmt.Printf("  %-28s %v\n", name, display.GetProcAddress(name) != nil)
	}

	fmt.Println("extensions:")
	for _, ext := range strings.Fields(extensions) {
		fmt.Printf("  %s\n", ext)
	}
	display.Close()

	if !*probe {
		return 0
	}

	win := glwindow.New(glwindow.Options{Driver: driver, Settings: cfg, Logger: logger})
	defer win.Detach()
	if err := win.Create(cfg.Title+" probe", 0, 0); err != nil {
		fmt.Printf("probe:          OpenGL %d.%d core: %v\n", cfg.GLMajor, cfg.GLMinor, err)
		return 1
	}
	fmt.Printf("probe:          OpenGL %d.%d core: ok\n", cfg.GLMajor, cfg.GLMinor)
	fmt.Printf("vsync:          %s\n", win.VsyncCapability())
	return 0
}
