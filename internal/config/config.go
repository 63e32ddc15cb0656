// Package config loads the tool's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a configuration file when --config
// is not given.
const DefaultPath = "travelrec.yaml"

type Config struct {
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
}

type DataConfig struct {
	// File is the JSON document holding every record.
	File string `yaml:"file"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file and no flags are given.
func Default() Config {
	return Config{
		Data: DataConfig{File: filepath.Join("data", "records.json")},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads the YAML configuration at path on top of the defaults. A
// missing file is not an error; it yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	// Explicitly blank values fall back to the defaults rather than
	// producing a store with no path or a logger with no level.
	if cfg.Data.File == "" {
		cfg.Data.File = Default().Data.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = Default().Log.Level
	}
	return cfg, nil
}
