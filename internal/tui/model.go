package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/ipc"
)

const refreshInterval = time.Second

type statusMsg struct {
	status *ipc.StatusData
	err    error
}

type actionMsg struct {
	text string
	err  error
}

type tickMsg time.Time

// model is the root bubbletea model for the control panel.
type model struct {
	ctrl Controller

	status    *ipc.StatusData
	connected bool
	lastError string
	message   string

	// Title edit mode
	editing   bool
	textInput textinput.Model

	width  int
	height int
}

func newModel(ctrl Controller) model {
	ti := textinput.New()
	ti.Placeholder = "window title"
	ti.CharLimit = 256
	ti.Width = 40

	return model{
		ctrl:      ctrl,
		textInput: ti,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) refresh() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		status, err := ctrl.GetStatus()
		return statusMsg{status: status, err: err}
	}
}

// action runs fn off the update loop and reports text on success.
func (m model) action(text string, fn func(Controller) error) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return actionMsg{text: text, err: fn(ctrl)}
	}
}

func (m model) interval() int {
	if m.status == nil {
		return 0
	}
	return m.status.SwapInterval
}

func (m model) setVSync(interval int) (model, tea.Cmd) {
	if interval < 0 {
		interval = 0
	}
	if interval > config.MaxSwapInterval {
		interval = config.MaxSwapInterval
	}
	if m.status != nil && interval == m.status.SwapInterval {
		return m, nil
	}
	return m, m.action(
		"swap interval "+strconv.Itoa(interval)+" requested",
		func(c Controller) error { return c.SetVSync(interval) },
	)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case statusMsg:
		if msg.err != nil {
			m.connected = false
			m.status = nil
			m.lastError = msg.err.Error()
			return m, nil
		}
		m.connected = true
		m.status = msg.status
		m.lastError = ""
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.lastError = msg.err.Error()
			m.message = ""
			return m, nil
		}
		m.lastError = ""
		m.message = msg.text
		return m, m.refresh()
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		return m.updateEditing(km)
	}

	switch km.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		return m, m.refresh()
	case "+", "=", "up":
		return m.setVSync(m.interval() + 1)
	case "-", "down":
		return m.setVSync(m.interval() - 1)
	case "0":
		return m.setVSync(0)
	case "s":
		return m, m.action("window shown", Controller.Show)
	case "h":
		return m, m.action("window hidden", Controller.Hide)
	case "t":
		m.editing = true
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m model) updateEditing(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch km.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		m.textInput.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.textInput.Value())
		if title == "" {
			m.lastError = "title must not be empty"
			return m, nil
		}
		m.editing = false
		m.textInput.Blur()
		return m, m.action("title set", func(c Controller) error { return c.SetTitle(title) })
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(km)
	return m, cmd
}
