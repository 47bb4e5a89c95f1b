// Package config loads the YAML configuration shared by the marking menu
// binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mchmarny/markingmenu/pkg/gesture"
	"github.com/mchmarny/markingmenu/pkg/server"
	"gopkg.in/yaml.v3"
)

// DefaultAspectRatio is the height of a terminal cell over its width.
const DefaultAspectRatio = 2.0

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	Gesture  Gesture  `yaml:"gesture"`
	Server   Server   `yaml:"server"`
	Terminal Terminal `yaml:"terminal"`
	Log      Log      `yaml:"log"`
}

// Gesture tunes recognition.
type Gesture struct {
	PauseDelay          time.Duration `yaml:"pause_delay"`
	MoveThreshold       float64       `yaml:"move_threshold"`
	NeutralRadius       float64       `yaml:"neutral_radius"`
	ExpertNeutralRadius float64       `yaml:"expert_neutral_radius"`
}

// Server configures the HTTP server.
type Server struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Terminal configures the terminal host.
type Terminal struct {
	// AspectRatio scales rows so that gestures are measured in square units.
	AspectRatio float64 `yaml:"aspect_ratio"`
}

// Log configures the default logger.
type Log struct {
	Level string `yaml:"level"`

	// File receives logs instead of stderr when set.
	File string `yaml:"file"`
}

// Default returns the stock configuration.
func Default() *Config {
	g := gesture.DefaultOptions()

	return &Config{
		Gesture: Gesture{
			PauseDelay:          g.PauseDelay,
			MoveThreshold:       g.MoveThreshold,
			NeutralRadius:       g.NeutralRadius,
			ExpertNeutralRadius: g.ExpertNeutralRadius,
		},
		Server: Server{
			Port:         server.DefaultPort,
			ReadTimeout:  server.DefaultReadTimeout,
			WriteTimeout: server.DefaultWriteTimeout,
		},
		Terminal: Terminal{
			AspectRatio: DefaultAspectRatio,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the configuration file at path. Missing keys keep their
// defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader parses and validates a configuration from r.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the binaries cannot run with.
func (c *Config) Validate() error {
	if err := c.GestureOptions().Validate(); err != nil {
		return fmt.Errorf("%w: gesture: %w", ErrInvalid, err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalid, c.Server.Port)
	}

	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalid)
	}

	if c.Terminal.AspectRatio <= 0 {
		return fmt.Errorf("%w: terminal aspect ratio must be positive, got %v", ErrInvalid, c.Terminal.AspectRatio)
	}

	return nil
}

// GestureOptions converts the gesture section into tracker options.
func (c *Config) GestureOptions() gesture.Options {
	return gesture.Options{
		PauseDelay:          c.Gesture.PauseDelay,
		MoveThreshold:       c.Gesture.MoveThreshold,
		NeutralRadius:       c.Gesture.NeutralRadius,
		ExpertNeutralRadius: c.Gesture.ExpertNeutralRadius,
	}
}

// ServerOptions converts the server section into server options.
func (c *Config) ServerOptions() []server.Option {
	return []server.Option{
		server.WithPort(c.Server.Port),
		server.WithReadTimeout(c.Server.ReadTimeout),
		server.WithWriteTimeout(c.Server.WriteTimeout),
	}
}
