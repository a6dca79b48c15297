package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/glxwin/internal/ipc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	parts := []string{
		renderStatusBar(m.connected, m.status, width),
		titleStyle.Render("glxwin presenter"),
	}

	if m.status != nil {
		parts = append(parts, panelStyle.Render(renderDetails(m.status)))
	}

	if m.editing {
		parts = append(parts, "New title: "+m.textInput.View())
	}

	switch {
	case m.lastError != "":
		parts = append(parts, errorStyle.Render("error: "+m.lastError))
	case m.message != "":
		parts = append(parts, messageStyle.Render(m.message))
	}

	parts = append(parts, renderHelpBar(m.editing, width))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderDetails(s *ipc.StatusData) string {
	rows := [][2]string{
		{"window", fmt.Sprintf("0x%x", s.WindowID)},
		{"size", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"map state", s.MapState},
		{"managed", yesNo(s.Managed)},
		{"owned", yesNo(s.Owned)},
		{"context attached", yesNo(s.ContextAttached)},
		{"swap control", s.VsyncCapability},
		{"swap interval", fmt.Sprintf("%d", s.SwapInterval)},
		{"frames", fmt.Sprintf("%d", s.Frames)},
		{"uptime", fmt.Sprintf("%ds", s.UptimeSeconds)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func renderStatusBar(connected bool, status *ipc.StatusData, width int) string {
	var text string
	if connected && status != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		text = fmt.Sprintf("%s presenter running  window:0x%x  vsync:%d", dot, status.WindowID, status.SwapInterval)
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		text = dot + " presenter not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(text)
}

func renderHelpBar(editing bool, width int) string {
	help := "+/-: vsync  0: vsync off  s: show  h: hide  t: title  r: refresh  q: quit"
	if editing {
		help = "enter: apply  esc: cancel"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
