// Package config loads the engine's runtime tunables, in the same shape
// the teacher's internal/config/config.go uses for its own settings:
// a YAML file unmarshalled into a tagged struct, with a Load(path) entry
// point.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the small set of knobs the engine actually exposes. Every
// other behavior in spec.md is fixed by the specification itself, not
// configurable.
type Config struct {
	// QueueSize bounds the Worker Loop's ingress channel. The Update Log is
	// specified as conceptually unbounded (spec.md §5); this only controls
	// how much a Go channel can buffer before a submitting goroutine blocks.
	QueueSize int `yaml:"queue_size"`

	// LogLevel controls the engine's slog verbosity: "debug", "info",
	// "warn", or "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the engine's built-in defaults, used when no config file
// is supplied.
func Default() Config {
	return Config{
		QueueSize: 64,
		LogLevel:  "info",
	}
}

// Load reads and parses a YAML config file at path, falling back to
// Default for any zero-valued field.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = Default().QueueSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}

// Level parses LogLevel into an slog.Level, defaulting to Info for an
// unrecognized value.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
