package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/glxwin/internal/ipc"
	"github.com/1broseidon/glxwin/internal/tui"
)

func runTUI(args []string) int {
	fs, socket := newControlFlags("tui", "Usage: glxwin tui [--socket PATH]")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tui takes no arguments")
		fs.Usage()
		return 2
	}

	if err := tui.Run(ipc.NewClient(*socket)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
