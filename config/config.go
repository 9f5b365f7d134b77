package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the runner looks when no --config flag is given.
const DefaultPath = "config/cityrun.toml"

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Physics PhysicsConfig `toml:"physics"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Content ContentConfig `toml:"content"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit float64 `toml:"pixels_per_unit"`
	TPS           int     `toml:"tps"`
}

type PhysicsConfig struct {
	Gravity    float64 `toml:"gravity"` // negative pulls down
	Iterations int     `toml:"iterations"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// ContentConfig points at on-disk overrides for the embedded YAML.
type ContentConfig struct {
	PrefabDir string `toml:"prefab_dir"`
	LevelDir  string `toml:"level_dir"`
	Watch     bool   `toml:"watch"`
}

type DebugConfig struct {
	ShowBodies bool   `toml:"show_bodies"`
	StartLevel string `toml:"start_level"`
}

// Load reads path over the defaults. A missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.PixelsPerUnit <= 0:
		return fmt.Errorf("pixels_per_unit must be positive")
	case c.Window.TPS <= 0:
		return fmt.Errorf("tps must be positive")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio volume %.2f out of range", c.Audio.Volume)
	case c.Logging.Format != "json" && c.Logging.Format != "console":
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "City Run",
			Width:         1000,
			Height:        700,
			PixelsPerUnit: 15,
			TPS:           60,
		},
		Physics: PhysicsConfig{
			Gravity:    -25,
			Iterations: 10,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Content: ContentConfig{
			PrefabDir: "prefabs",
			LevelDir:  "levels",
		},
	}
}
