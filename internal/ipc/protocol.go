package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus CommandType = "GET_STATUS"
	CommandSetVSync  CommandType = "SET_VSYNC"
	CommandShow      CommandType = "SHOW"
	CommandHide      CommandType = "HIDE"
	CommandSetTitle  CommandType = "SET_TITLE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	WindowID        uint32 `json:"window_id"`
	Managed         bool   `json:"managed"`
	Owned           bool   `json:"owned"`
	ContextAttached bool   `json:"context_attached"`
	VsyncCapability string `json:"vsync_capability"`
	SwapInterval    int    `json:"swap_interval"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	MapState        string `json:"map_state"`
	Frames          uint64 `json:"frames"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
}

type SetVSyncPayload struct {
	Interval int `json:"interval"`
}

type SetTitlePayload struct {
	Title string `json:"title"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
