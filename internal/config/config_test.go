package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.ModeWidth != 640 || cfg.ModeHeight != 480 {
		t.Fatalf("expected 640x480 default mode, got %dx%d", cfg.ModeWidth, cfg.ModeHeight)
	}
	if cfg.GLMajor != 3 || cfg.GLMinor != 3 {
		t.Fatalf("expected GL 3.3 default, got %d.%d", cfg.GLMajor, cfg.GLMinor)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Title != DefaultTitle {
		t.Fatalf("expected default title, got %q", res.Config.Title)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.VSync != DefaultVSync {
		t.Fatalf("expected vsync %d, got %d", DefaultVSync, res.Config.VSync)
	}
	if len(res.Sources) != 0 {
		t.Fatalf("expected no file sources, got %v", res.Sources)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"display: \":1\"",
		"mode_width: 1280",
		"mode_height: 720",
		"gl_major: 4",
		"gl_minor: 6",
		"vsync: 0",
		"debug_opengl: true",
		"managed_title: false",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" {
		t.Fatalf("expected display :1, got %q", cfg.Display)
	}
	if cfg.ModeWidth != 1280 || cfg.ModeHeight != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", cfg.ModeWidth, cfg.ModeHeight)
	}
	if cfg.GLMajor != 4 || cfg.GLMinor != 6 {
		t.Fatalf("expected GL 4.6, got %d.%d", cfg.GLMajor, cfg.GLMinor)
	}
	if cfg.VSync != 0 {
		t.Fatalf("expected vsync 0, got %d", cfg.VSync)
	}
	if !cfg.DebugOpenGL || cfg.ManagedTitle {
		t.Fatalf("expected debug_opengl=true managed_title=false, got %v %v", cfg.DebugOpenGL, cfg.ManagedTitle)
	}
	// Untouched keys keep defaults.
	if cfg.FrameRate != DefaultFrameRate {
		t.Fatalf("expected default frame_rate, got %d", cfg.FrameRate)
	}

	src, ok := res.Sources["mode_width"]
	if !ok || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected mode_width source at line 2, got %#v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := writeConfig(t, "title: demo\nvsync: 42\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "vsync" {
		t.Fatalf("expected vsync path, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected line number in message, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero width", func(c *Config) { c.ModeWidth = 0 }, "mode_width"},
		{"negative height", func(c *Config) { c.ModeHeight = -1 }, "mode_height"},
		{"major zero", func(c *Config) { c.GLMajor = 0 }, "gl_major"},
		{"minor negative", func(c *Config) { c.GLMinor = -1 }, "gl_minor"},
		{"vsync too large", func(c *Config) { c.VSync = MaxSwapInterval + 1 }, "vsync"},
		{"frame rate zero", func(c *Config) { c.FrameRate = 0 }, "frame_rate"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"blank title", func(c *Config) { c.Title = "  " }, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestIntAndBool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModeWidth = 800
	cfg.DebugOpenGL = true

	if got := cfg.Int(KeyModeWidth); got != 800 {
		t.Fatalf("ModeWidth = %d, want 800", got)
	}
	if got := cfg.Int(KeyModeHeight); got != DefaultModeHeight {
		t.Fatalf("ModeHeight = %d, want %d", got, DefaultModeHeight)
	}
	if got := cfg.Int("nonsense"); got != 0 {
		t.Fatalf("unknown int key = %d, want 0", got)
	}
	if !cfg.Bool(KeyDebugOpenGL) {
		t.Fatalf("expected debug_opengl true")
	}
	if cfg.Bool("nonsense") {
		t.Fatalf("unknown bool key should be false")
	}

	var nilCfg *Config
	if got := nilCfg.Int(KeyGLMajor); got != DefaultGLMajor {
		t.Fatalf("nil config gl_major = %d, want %d", got, DefaultGLMajor)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Title = "scene"
	cfg.VSync = 2

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Title != "scene" || res.Config.VSync != 2 {
		t.Fatalf("unexpected config after reload: %+v", res.Config)
	}
}

func TestDefaultConfigPath_HonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if want := filepath.Join(dir, "glxwin", "config.yaml"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
}
