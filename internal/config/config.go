package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Setting keys read through Int and Bool. The window-size and debug keys keep
// the spelling the renderer settings have always used.
const (
	KeyModeWidth    = "ModeWidth"
	KeyModeHeight   = "ModeHeight"
	KeyDebugOpenGL  = "debug_opengl"
	KeyGLMajor      = "gl_major"
	KeyGLMinor      = "gl_minor"
	KeyVSync        = "vsync"
	KeyFrameRate    = "frame_rate"
	KeyManagedTitle = "managed_title"
)

const (
	DefaultModeWidth  = 640
	DefaultModeHeight = 480
	DefaultGLMajor    = 3
	DefaultGLMinor    = 3
	DefaultVSync      = 1
	DefaultFrameRate  = 60
	DefaultTitle      = "glxwin"

	// MaxSwapInterval bounds vsync; larger waits are never useful for
	// presentation and usually a typo.
	MaxSwapInterval = 8
)

// Config holds the application configuration.
type Config struct {
	Display      string `yaml:"display,omitempty"`
	XAuthority   string `yaml:"xauthority,omitempty"`
	Title        string `yaml:"title"`
	ModeWidth    int    `yaml:"mode_width"`
	ModeHeight   int    `yaml:"mode_height"`
	GLMajor      int    `yaml:"gl_major"`
	GLMinor      int    `yaml:"gl_minor"`
	VSync        int    `yaml:"vsync"`                 // 0 = no wait, N = wait N frames
	FrameRate    int    `yaml:"frame_rate"`            // presenter ticks per second
	ManagedTitle bool   `yaml:"managed_title"`         // title owned by glxwin rather than the host
	DebugOpenGL  bool   `yaml:"debug_opengl"`          // report missing entry points
	LogLevel     string `yaml:"log_level"`             // debug, info, warning, error
	SocketPath   string `yaml:"socket_path,omitempty"` // overrides the runtime dir socket
}

func DefaultConfig() *Config {
	return &Config{
		Title:        DefaultTitle,
		ModeWidth:    DefaultModeWidth,
		ModeHeight:   DefaultModeHeight,
		GLMajor:      DefaultGLMajor,
		GLMinor:      DefaultGLMinor,
		VSync:        DefaultVSync,
		FrameRate:    DefaultFrameRate,
		ManagedTitle: true,
		LogLevel:     "info",
	}
}

// Int returns the integer setting stored under key, or 0 for unknown keys.
func (c *Config) Int(key string) int {
	if c == nil {
		c = DefaultConfig()
	}
	switch key {
	case KeyModeWidth:
		return c.ModeWidth
	case KeyModeHeight:
		return c.ModeHeight
	case KeyGLMajor:
		return c.GLMajor
	case KeyGLMinor:
		return c.GLMinor
	case KeyVSync:
		return c.VSync
	case KeyFrameRate:
		return c.FrameRate
	default:
		return 0
	}
}

// Bool returns the boolean setting stored under key, or false for unknown keys.
func (c *Config) Bool(key string) bool {
	if c == nil {
		c = DefaultConfig()
	}
	switch key {
	case KeyDebugOpenGL:
		return c.DebugOpenGL
	case KeyManagedTitle:
		return c.ManagedTitle
	default:
		return false
	}
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ValidationError points at the offending key and, when loaded from a file,
// the line it came from.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (c *Config) Validate() error {
	if c.ModeWidth <= 0 {
		return &ValidationError{Path: "mode_width", Err: fmt.Errorf("mode_width must be > 0")}
	}
	if c.ModeHeight <= 0 {
		return &ValidationError{Path: "mode_height", Err: fmt.Errorf("mode_height must be > 0")}
	}
	if c.GLMajor < 1 {
		return &ValidationError{Path: "gl_major", Err: fmt.Errorf("gl_major must be >= 1")}
	}
	if c.GLMinor < 0 {
		return &ValidationError{Path: "gl_minor", Err: fmt.Errorf("gl_minor must be >= 0")}
	}
	if c.VSync < 0 || c.VSync > MaxSwapInterval {
		return &ValidationError{Path: "vsync", Err: fmt.Errorf("vsync must be between 0 and %d", MaxSwapInterval)}
	}
	if c.FrameRate <= 0 || c.FrameRate > 1000 {
		return &ValidationError{Path: "frame_rate", Err: fmt.Errorf("frame_rate must be between 1 and 1000")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title must not be empty")}
	}
	return nil
}
