package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/glx"
)

func TestLegacySwapIntervalCodes(t *testing.T) {
	tests := []struct {
		name     string
		tag      uint32
		interval int
		mesa     bool
		want     int
	}{
		{"sgi no context", 0, 1, false, glxBadContext},
		{"sgi off rejected", 1, 0, false, glxBadValue},
		{"sgi one", 1, 1, false, 0},
		{"mesa no context", 0, 0, true, glxBadContext},
		{"mesa off accepted", 1, 0, true, 0},
		{"mesa two", 1, 2, true, 0},
		{"mesa negative", 1, -1, true, glxBadValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min := 1
			if tt.mesa {
				min = 0
			}
			if got := legacyIntervalCode(glx.ContextTag(tt.tag), tt.interval, min); got != tt.want {
				t.Fatalf("code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSwapIntervalSGI_OffNotSent(t *testing.T) {
	// No X connection: a request that got past validation would panic.
	c := &Connection{contextTag: 1}
	if got := c.SwapIntervalSGI(0); got != glxBadValue {
		t.Fatalf("SwapIntervalSGI(0) = %d, want %d", got, glxBadValue)
	}
	c = &Connection{}
	if got := c.SwapIntervalMESA(0); got != glxBadContext {
		t.Fatalf("SwapIntervalMESA(0) without context = %d, want %d", got, glxBadContext)
	}
}
