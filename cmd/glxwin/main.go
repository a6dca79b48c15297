package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/term"
)

func init() {
	// GLX context state follows the thread that made it current; keep the
	// main goroutine, which runs the presenter, on one thread.
	runtime.LockOSThread()
}

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "info":
		os.Exit(runInfo(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "vsync":
		os.Exit(runVSync(os.Args[2:]))
	case "show":
		os.Exit(runVisibility("show", os.Args[2:]))
	case "hide":
		os.Exit(runVisibility("hide", os.Args[2:]))
	case "title":
		os.Exit(runTitle(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glxwin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Create (or attach to) a window and present frames")
	fmt.Fprintln(w, "  info                Show GLX version, extensions and swap control")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  status              Show presenter status")
	fmt.Fprintln(w, "  vsync <interval>    Request a new swap interval")
	fmt.Fprintln(w, "  show                Map and raise the presenter window")
	fmt.Fprintln(w, "  hide                Unmap the presenter window")
	fmt.Fprintln(w, "  title <text>        Set the presenter window title")
	fmt.Fprintln(w, "  tui                 Interactive presenter control panel")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the configuration file path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'glxwin <command> --help' for command-specific options.")
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
func newLogger(w *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(w.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseWindowID accepts decimal or 0x-prefixed hexadecimal X window ids.
func parseWindowID(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("window id is empty")
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("window id must be non-zero")
	}
	return uint32(id), nil
}
