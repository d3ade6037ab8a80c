// Package config loads the mirview configuration file.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mirview.yaml"

// Config is the complete mirview configuration.
type Config struct {
	DataDir   string        `yaml:"data_dir"`
	ViewsDir  string        `yaml:"views_dir"`  // empty: built-in templates
	AssetsDir string        `yaml:"assets_dir"` // empty: built-in stylesheet
	Output    OutputConfig  `yaml:"output"`
	Server    ServerConfig  `yaml:"server"`
	Logging   LoggingConfig `yaml:"logging"`
}

// OutputConfig controls where static builds are written.
type OutputConfig struct {
	Directory        string `yaml:"directory"`
	SubpathDirectory string `yaml:"subpath_directory"`
	Concurrency      int    `yaml:"concurrency"`
}

// ServerConfig controls the live server.
type ServerConfig struct {
	Port    int   `yaml:"port"`
	Metrics *bool `yaml:"metrics,omitempty"`
}

// MetricsEnabled reports whether /metrics is served. Unset means enabled.
func (s ServerConfig) MetricsEnabled() bool {
	return s.Metrics == nil || *s.Metrics
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads the configuration at path. An empty path falls back to
// DefaultPath, and a missing default file yields the defaults; a missing
// explicit path is a configuration error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration file").
				Fatal().
				WithContext("path", path).
				Build()
		}
	case os.IsNotExist(err) && !explicit:
		slog.Debug("No configuration file, using defaults", slog.String("path", path))
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file not found").
			Fatal().
			UserAction().
			WithContext("path", path).
			Build()
	}

	if err := normalize(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
