package mcp

// WindowStatusInput is the input for the window_status tool.
type WindowStatusInput struct{}

// SetVSyncInput is the input for the set_vsync tool.
type SetVSyncInput struct {
	Interval int `json:"interval" jsonschema:"Swap interval: 0 disables vsync, N waits N vertical blanks per frame"`
}

// SetVSyncOutput is the output for the set_vsync tool.
type SetVSyncOutput struct {
	Interval int    `json:"interval"`
	Note     string `json:"note"`
}

// VisibilityInput is the input for the show_window and hide_window tools.
type VisibilityInput struct{}

// SetWindowTitleInput is the input for the set_window_title tool.
type SetWindowTitleInput struct {
	Title string `json:"title" jsonschema:"New window title. Ignored by the presenter when the host application manages the title."`
}
