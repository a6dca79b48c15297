package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/glxwin/internal/runtimepath"
)

// Client handles IPC communication with a running presenter
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket, or socketPath when set.
func NewClient(socketPath string) *Client {
	path, err := runtimepath.SocketPath(socketPath)
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		path = ""
	}

	return &Client{
		socketPath: path,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to presenter: %w (is glxwin run active?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("presenter error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves presenter status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// SetVSync requests a new swap interval, applied on the next frame.
func (c *Client) SetVSync(interval int) error {
	payload, err := json.Marshal(SetVSyncPayload{Interval: interval})
	if err != nil {
		return fmt.Errorf("failed to marshal vsync payload: %w", err)
	}

	_, err = c.sendRequest(&Request{
		Command: CommandSetVSync,
		Payload: payload,
	})
	return err
}

// Show maps and raises the presenter window.
func (c *Client) Show() error {
	_, err := c.sendRequest(&Request{Command: CommandShow})
	return err
}

// Hide unmaps the presenter window.
func (c *Client) Hide() error {
	_, err := c.sendRequest(&Request{Command: CommandHide})
	return err
}

// SetTitle updates the window title if glxwin manages it.
func (c *Client) SetTitle(title string) error {
	payload, err := json.Marshal(SetTitlePayload{Title: title})
	if err != nil {
		return fmt.Errorf("failed to marshal title payload: %w", err)
	}

	_, err = c.sendRequest(&Request{
		Command: CommandSetTitle,
		Payload: payload,
	})
	return err
}

// Ping checks if the presenter is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
