// Package config loads the YAML settings for window, physics, player tuning and input.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Window  WindowConfig        `yaml:"window"`
	Physics PhysicsConfig       `yaml:"physics"`
	Player  PlayerConfig        `yaml:"player"`
	Input   map[string][]string `yaml:"input"`
	Scene   SceneConfig         `yaml:"scene"`
	Log     LogConfig           `yaml:"log"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type PhysicsConfig struct {
	DefaultGravity float32 `yaml:"default_gravity"` // units per second squared, applied downward
	TickRate       int     `yaml:"tick_rate"`       // fixed physics ticks per second
	MaxSteps       int     `yaml:"max_steps"`       // cap on ticks run in one frame
}

type PlayerConfig struct {
	Speed            float32 `yaml:"speed"`
	JumpVelocity     float32 `yaml:"jump_velocity"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // radians per pixel
	PitchMin         float32 `yaml:"pitch_min"`
	PitchMax         float32 `yaml:"pitch_max"`
	CameraPivot      string  `yaml:"camera_pivot"`
}

type SceneConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DerivedConfig struct {
	TickDelta float32 // seconds per physics tick
}

// Load reads defaults, then overlays the YAML file at path if one is given.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays data on the embedded defaults. Maps merge key by key, so a
// file that only rebinds jump keeps the other default bindings.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("physics.tick_rate must be positive, got %d", c.Physics.TickRate)
	}
	if c.Physics.MaxSteps <= 0 {
		return fmt.Errorf("physics.max_steps must be positive, got %d", c.Physics.MaxSteps)
	}
	if c.Player.PitchMin > c.Player.PitchMax {
		return fmt.Errorf("player.pitch_min (%v) is above pitch_max (%v)", c.Player.PitchMin, c.Player.PitchMax)
	}
	if c.Player.Speed < 0 {
		return fmt.Errorf("player.speed must not be negative, got %v", c.Player.Speed)
	}
	return nil
}

func (c *Config) computeDerived() {
	c.Derived.TickDelta = 1 / float32(c.Physics.TickRate)
}

// WriteYAML saves the configuration, e.g. next to a trace for reproducibility.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
