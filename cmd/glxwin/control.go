package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/ipc"
)

func newControlFlags(name, usage string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/glxwin.sock)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	return fs, socket
}

func runStatus(args []string) int {
	fs, socket := newControlFlags("status", "Usage: glxwin status [--json]")
	asJSON := fs.Bool("json", false, "Print status as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient(*socket).GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	fmt.Printf("window_id:        0x%x\n", status.WindowID)
	fmt.Printf("size:             %dx%d\n", status.Width, status.Height)
	fmt.Printf("map_state:        %s\n", status.MapState)
	fmt.Printf("managed:          %v\n", status.Managed)
	fmt.Printf("owned:            %v\n", status.Owned)
	fmt.Printf("context_attached: %v\n", status.ContextAttached)
	fmt.Printf("vsync_capability: %s\n", status.VsyncCapability)
	fmt.Printf("swap_interval:    %d\n", status.SwapInterval)
	fmt.Printf("frames:           %d\n", status.Frames)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}

func runVSync(args []string) int {
	fs, socket := newControlFlags("vsync", "Usage: glxwin vsync <interval>")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	interval, err := strconv.Atoi(fs.Arg(0))
	if err != nil || interval < 0 || interval > config.MaxSwapInterval {
		fmt.Fprintf(os.Stderr, "interval must be an integer between 0 and %d\n", config.MaxSwapInterval)
		return 2
	}

	if err := ipc.NewClient(*socket).SetVSync(interval); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runVisibility(name string, args []string) int {
	fs, socket := newControlFlags(name, fmt.Sprintf("Usage: glxwin %s", name))
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient(*socket)
	var err error
	if name == "show" {
		err = client.Show()
	} else {
		err = client.Hide()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTitle(args []string) int {
	fs, socket := newControlFlags("title", "Usage: glxwin title <text>")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient(*socket).SetTitle(title); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
