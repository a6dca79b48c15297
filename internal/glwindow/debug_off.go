//go:build !gldebug

package glwindow

const debugContext = false
