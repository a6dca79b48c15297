package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/glxwin/internal/config"
	"github.com/1broseidon/glxwin/internal/ipc"
)

const (
	ServerName    = "glxwin"
	ServerVersion = "0.1.0"
)

// Presenter is the control surface of a running glxwin presenter.
// *ipc.Client implements it.
type Presenter interface {
	GetStatus() (*ipc.StatusData, error)
	SetVSync(interval int) error
	Show() error
	Hide() error
	SetTitle(title string) error
}

var _ Presenter = (*ipc.Client)(nil)

// Server exposes presenter controls as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	presenter Presenter
}

// NewServer creates an MCP server that forwards tool calls to presenter.
func NewServer(presenter Presenter) *Server {
	s := &Server{presenter: presenter}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "window_status",
		Description: "Report the presenter window: id, size, map state, whether the GL context is attached, the detected swap-control capability, the requested swap interval and frames presented.",
	}, s.handleWindowStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_vsync",
		Description: fmt.Sprintf("Request a new swap interval (0 to %d). The change is applied right before the next presented frame.", config.MaxSwapInterval),
	}, s.handleSetVSync)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_window",
		Description: "Map and raise the presenter window.",
	}, s.handleShowWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_window",
		Description: "Unmap the presenter window. Rendering continues off screen.",
	}, s.handleHideWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_title",
		Description: "Set the presenter window title when glxwin manages it.",
	}, s.handleSetWindowTitle)
}

func (s *Server) handleWindowStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ WindowStatusInput) (*mcpsdk.CallToolResult, ipc.StatusData, error) {
	status, err := s.presenter.GetStatus()
	if err != nil {
		return nil, ipc.StatusData{}, fmt.Errorf("failed to query presenter: %w", err)
	}
	return nil, *status, nil
}

func (s *Server) handleSetVSync(_ context.Context, _ *mcpsdk.CallToolRequest, args SetVSyncInput) (*mcpsdk.CallToolResult, SetVSyncOutput, error) {
	if args.Interval < 0 || args.Interval > config.MaxSwapInterval {
		return nil, SetVSyncOutput{}, fmt.Errorf("interval must be between 0 and %d", config.MaxSwapInterval)
	}
	if err := s.presenter.SetVSync(args.Interval); err != nil {
		return nil, SetVSyncOutput{}, fmt.Errorf("failed to set vsync: %w", err)
	}
	return nil, SetVSyncOutput{
		Interval: args.Interval,
		Note:     "applied on the next presented frame",
	}, nil
}

func (s *Server) handleShowWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ VisibilityInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.presenter.Show(); err != nil {
		return nil, nil, fmt.Errorf("failed to show window: %w", err)
	}
	return textResult("Window shown"), nil, nil
}

func (s *Server) handleHideWindow(_ context.Context, _ *mcpsdk.CallToolRequest, _ VisibilityInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.presenter.Hide(); err != nil {
		return nil, nil, fmt.Errorf("failed to hide window: %w", err)
	}
	return textResult("Window hidden"), nil, nil
}

func (s *Server) handleSetWindowTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowTitleInput) (*mcpsdk.CallToolResult, any, error) {
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return nil, nil, fmt.Errorf("title is required")
	}
	if err := s.presenter.SetTitle(title); err != nil {
		return nil, nil, fmt.Errorf("failed to set title: %w", err)
	}
	return textResult(fmt.Sprintf("Title set to %q", title)), nil, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}
