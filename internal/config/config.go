// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Game     GameConfig     `yaml:"game"`
	Scene    SceneConfig    `yaml:"scene"`
	Lights   []LightConfig  `yaml:"lights"`
	Assets   AssetsConfig   `yaml:"assets"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"` // Only used with vsync off; 0 = unlimited
}

// GameConfig holds gameplay settings. Speeds are world units per second.
type GameConfig struct {
	PlayerSpeedX       float32    `yaml:"player_speed_x"`
	PlayerSpeedY       float32    `yaml:"player_speed_y"`
	PlayerSize         [2]float32 `yaml:"player_size"`
	PlayerStart        [2]float32 `yaml:"player_start"`
	LightFollowsPlayer bool       `yaml:"light_follows_player"` // Light 0 tracks the player
}

// SceneConfig describes the unlit world geometry.
type SceneConfig struct {
	Background  [3]float32   `yaml:"background"`
	GroundColor [3]float32   `yaml:"ground_color"`
	GroundY     float32      `yaml:"ground_y"` // Top edge of the ground plane
	Props       []PropConfig `yaml:"props"`
}

// PropConfig is a static shape drawn into the scene.
type PropConfig struct {
	Shape     string     `yaml:"shape"` // "rect", "circle" or "line"
	Position  [2]float32 `yaml:"position"`
	Size      [2]float32 `yaml:"size"` // Rect width/height, circle radius in Size[0], or line end point
	Thickness float32    `yaml:"thickness,omitempty"`
	Color     [3]float32 `yaml:"color"`
}

// LightConfig is an initial light slot.
type LightConfig struct {
	Position [2]float32 `yaml:"position"`
	Radius   float32    `yaml:"radius"`
	Color    [3]float32 `yaml:"color"`
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // Explicit asset directory; empty = auto-detect
}

// DebugConfig holds developer overlay settings.
type DebugConfig struct {
	Crosshair     bool   `yaml:"crosshair"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "Lantern",
			Width:      1024,
			Height:     576,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Game: GameConfig{
			PlayerSpeedX:       0.6,
			PlayerSpeedY:       0.6,
			PlayerSize:         [2]float32{0.2, 0.2},
			PlayerStart:        [2]float32{0, -0.3},
			LightFollowsPlayer: true,
		},
		Scene: SceneConfig{
			Background:  [3]float32{0.85, 0.2, 0.2},
			GroundColor: [3]float32{0.35, 0.25, 0.15},
			GroundY:     -0.4,
			Props: []PropConfig{
				{Shape: "line", Position: [2]float32{-0.4, 0.4}, Size: [2]float32{-0.8, 0.9}, Thickness: 0.05, Color: [3]float32{0, 0.47, 0.95}},
				{Shape: "rect", Position: [2]float32{-0.3, 0.1}, Size: [2]float32{0.2, 0.2}, Color: [3]float32{0, 0.89, 0.19}},
				{Shape: "circle", Position: [2]float32{0.4, 0}, Size: [2]float32{0.1, 0}, Color: [3]float32{0.99, 0.98, 0}},
			},
		},
		Lights: []LightConfig{
			{Radius: 0.5, Color: [3]float32{1, 0.95, 0.85}},
			{Position: [2]float32{-0.6, 0.2}, Radius: 0.35, Color: [3]float32{1, 0.6, 0.2}},
			{Position: [2]float32{0.6, 0.1}, Radius: 0.4, Color: [3]float32{0.3, 0.5, 1}},
		},
		Debug: DebugConfig{
			Crosshair:     false,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks values the game cannot start with.
// Light and color ranges are not checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: fps_limit %d", ErrInvalid, c.Graphics.FPSLimit))
	}
	for i, p := range c.Scene.Props {
		switch p.Shape {
		case "rect", "circle", "line":
		default:
			errs = append(errs, fmt.Errorf("%w: prop %d has unknown shape %q", ErrInvalid, i, p.Shape))
		}
	}
	return errors.Join(errs...)
}
