package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// FindWindowByTitle searches the EWMH client list for a window whose title
// contains substring and returns the first match. _NET_WM_NAME is preferred;
// WM_NAME is used for clients that only set the ICCCM property.
func (c *Connection) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("title substring is empty")
	}
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	for _, win := range clients {
		if titleMatches(c.windowTitle(win), substring) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}

func (c *Connection) windowTitle(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(c.XUtil, win)
	return name
}

// titleMatches reports whether title contains substr (case-sensitive).
func titleMatches(title, substr string) bool {
	return substr != "" && strings.Contains(title, substr)
}
