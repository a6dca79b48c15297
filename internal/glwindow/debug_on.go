//go:build gldebug

package glwindow

// Builds tagged gldebug request debug contexts.
const debugContext = true
