package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables exposed to operators of vyzzergen. Zero value
// is meaningless; use Default() and then Load to override from a file.
type Config struct {
	MaxStorageVariables int   `yaml:"max_storage_variables"`
	MaxFunctions        int   `yaml:"max_functions"`
	Seed                int64 `yaml:"seed"`
	CoerceShaWidth      bool  `yaml:"coerce_sha_width"`
}

// Default returns the built-in configuration used when no config file is
// supplied.
func Default() Config {
	return Config{
		MaxStorageVariables: DefaultMaxStorageVariables,
		MaxFunctions:        DefaultMaxFunctions,
		Seed:                1,
		CoerceShaWidth:      false,
	}
}

// Load reads a YAML config file and overlays it onto the defaults. A
// missing file is not an error: Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.MaxStorageVariables <= 0 {
		cfg.MaxStorageVariables = DefaultMaxStorageVariables
	}
	if cfg.MaxFunctions <= 0 {
		cfg.MaxFunctions = DefaultMaxFunctions
	}
	return cfg, nil
}
