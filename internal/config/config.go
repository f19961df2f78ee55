// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultEndpointURL is the create-user resource used when none is configured.
const DefaultEndpointURL = "https://fullstack-test-navy.vercel.app/api/users/create"

// Config holds all register configuration.
type Config struct {
	Endpoint Endpoint `yaml:"endpoint"`
	Log      Log      `yaml:"log"`
}

// Endpoint holds the user service location and request settings.
type Endpoint struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"` // 0 disables the request timeout
}

// Log holds diagnostics logging settings.
type Log struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
	File   string `yaml:"file"`   // Empty selects the command's default sink.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint: Endpoint{
			URL: DefaultEndpointURL,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil {
		return fmt.Errorf("config: endpoint.url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: endpoint.url must be an absolute http(s) URL, got %q", c.Endpoint.URL)
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("config: endpoint.timeout must be non-negative, got %v", c.Endpoint.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("config: log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// envOverrides lists the environment variables ApplyEnv reads. Unset
// variables leave their pointer nil.
type envOverrides struct {
	URL       *string        `env:"REGISTER_ENDPOINT_URL"`
	Timeout   *time.Duration `env:"REGISTER_ENDPOINT_TIMEOUT"`
	LogLevel  *string        `env:"REGISTER_LOG_LEVEL"`
	LogFormat *string        `env:"REGISTER_LOG_FORMAT"`
	LogFile   *string        `env:"REGISTER_LOG_FILE"`
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: REGISTER_ENDPOINT_URL, REGISTER_ENDPOINT_TIMEOUT,
// REGISTER_LOG_LEVEL, REGISTER_LOG_FORMAT, REGISTER_LOG_FILE.
func (c *Config) ApplyEnv() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	c.merge(&rawConfig{
		Endpoint: &rawEndpoint{URL: ov.URL, Timeout: ov.Timeout},
		Log:      &rawLog{Level: ov.LogLevel, Format: ov.LogFormat, File: ov.LogFile},
	})
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Endpoint *rawEndpoint `yaml:"endpoint"`
	Log      *rawLog      `yaml:"log"`
}

type rawEndpoint struct {
	URL     *string        `yaml:"url"`
	Timeout *time.Duration `yaml:"timeout"`
}

type rawLog struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
	File   *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Endpoint != nil {
		if layer.Endpoint.URL != nil {
			c.Endpoint.URL = *layer.Endpoint.URL
		}
		if layer.Endpoint.Timeout != nil {
			c.Endpoint.Timeout = *layer.Endpoint.Timeout
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.Format != nil {
			c.Log.Format = *layer.Log.Format
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
