package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"screen-snip/src/stroke"
)

const (
	// EnvFileVar points at an alternate config file when no .env sits next
	// to the executable.
	EnvFileVar = "SCREEN_SNIP"

	DefaultHotkey = "F1"
)

type Config struct {
	Hotkey            string
	EnableFileLogging bool
	BrushSize         int
	BrushColor        color.RGBA
}

// Load reads configuration from sources in priority order:
// 1) .env in the application (executable) directory
// 2) if not found, the file named by the SCREEN_SNIP env var
// Plain environment variables win over file values, per godotenv semantics.
func Load() (*Config, error) {
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	brushSize := stroke.DefaultBrushSize
	if v := os.Getenv("BRUSH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			brushSize = n
		}
	}
	if brushSize < stroke.MinBrushSize {
		brushSize = stroke.MinBrushSize
	} else if brushSize > stroke.MaxBrushSize {
		brushSize = stroke.MaxBrushSize
	}

	brushColor := stroke.DefaultBrushColor
	if v := os.Getenv("BRUSH_COLOR"); v != "" {
		c, err := ParseHexColor(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BRUSH_COLOR: %w", err)
		}
		brushColor = c
	}

	cfg := &Config{
		Hotkey:            getEnvWithDefault("HOTKEY", DefaultHotkey),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		BrushSize:         brushSize,
		BrushColor:        brushColor,
	}
	return cfg, nil
}

// ParseHexColor parses "#RRGGBB" (leading '#' optional) into an opaque RGBA.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("want RRGGBB, got %q", s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvFileVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
