package config

import (
	"fmt"
	"os"

	json "github.com/json-iterator/go"
)

// Load reads a JSON document from path over the defaults. Fields missing from the document
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a JSON document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: bad document: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.NET.MaxRequestSize <= 0:
		return fmt.Errorf("config: NET.MaxRequestSize must be positive, got %d", c.NET.MaxRequestSize)
	case c.NET.ReadBufferSize <= 0:
		return fmt.Errorf("config: NET.ReadBufferSize must be positive, got %d", c.NET.ReadBufferSize)
	case c.NET.WriteBufferSize <= 0:
		return fmt.Errorf("config: NET.WriteBufferSize must be positive, got %d", c.NET.WriteBufferSize)
	case c.NET.PollInterval <= 0:
		return fmt.Errorf("config: NET.PollInterval must be positive, got %s", c.NET.PollInterval)
	case c.NET.IdleTimeout < 0:
		return fmt.Errorf("config: NET.IdleTimeout must not be negative, got %s", c.NET.IdleTimeout)
	case len(c.FS.Root) == 0:
		return fmt.Errorf("config: FS.Root must be set")
	case c.Image.BitmapSize() <= 0:
		return fmt.Errorf("config: image dimensions must be positive")
	case c.Image.Gamma <= 0:
		return fmt.Errorf("config: Image.Gamma must be positive, got %g", c.Image.Gamma)
	}

	return nil
}
