package config

import (
	"image/color"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOTKEY", "ENABLE_FILE_LOGGING", "BRUSH_SIZE", "BRUSH_COLOR"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkey != DefaultHotkey {
		t.Errorf("Hotkey = %q, want %q", cfg.Hotkey, DefaultHotkey)
	}
	if cfg.EnableFileLogging {
		t.Error("file logging enabled by default")
	}
	if cfg.BrushSize < 1 || cfg.BrushSize > 40 {
		t.Errorf("default brush size %d out of range", cfg.BrushSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOTKEY", "Ctrl+Shift+S")
	t.Setenv("ENABLE_FILE_LOGGING", "TRUE")
	t.Setenv("BRUSH_SIZE", "99")
	t.Setenv("BRUSH_COLOR", "#00FF7F")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hotkey != "Ctrl+Shift+S" {
		t.Errorf("Hotkey = %q", cfg.Hotkey)
	}
	if !cfg.EnableFileLogging {
		t.Error("ENABLE_FILE_LOGGING=TRUE not honored")
	}
	if cfg.BrushSize != 40 {
		t.Errorf("BrushSize = %d, want clamp to 40", cfg.BrushSize)
	}
	if cfg.BrushColor != (color.RGBA{G: 255, B: 127, A: 255}) {
		t.Errorf("BrushColor = %v", cfg.BrushColor)
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	t.Setenv("BRUSH_COLOR", "reddish")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid BRUSH_COLOR")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF5050", color.RGBA{R: 255, G: 80, B: 80, A: 255}, false},
		{"ff5050", color.RGBA{R: 255, G: 80, B: 80, A: 255}, false},
		{" #000000 ", color.RGBA{A: 255}, false},
		{"#FFF", color.RGBA{}, true},
		{"#GGHHII", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
