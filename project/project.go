// Package project locates and loads the bspforge.yaml configuration
// that points the CLI at its map input and debug outputs.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "bspforge.yaml"

// Defaults used when a field is absent from bspforge.yaml, or when no
// config file exists at all.
const (
	DefaultMapPath  = "./unnamed.map"
	DefaultDumpPath = "./bsptree.json"
)

// Config represents the project configuration from bspforge.yaml.
type Config struct {
	Name     string `yaml:"name"`
	MapPath  string `yaml:"map,omitempty"`
	DumpPath string `yaml:"dump,omitempty"`
	Seed     uint64 `yaml:"seed,omitempty"`
}

// Default returns the configuration used when no bspforge.yaml exists:
// the fixed map path the rendering host opens.
func Default() *Config {
	return &Config{
		Name:     "unnamed",
		MapPath:  DefaultMapPath,
		DumpPath: DefaultDumpPath,
	}
}

// FindProjectRoot walks up from the current working directory looking for
// bspforge.yaml. Returns the directory containing it, or an error if not
// found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, configFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory of %s", configFileName, cwd)
		}
		dir = parent
	}
}

// LoadConfig loads and parses the bspforge.yaml file from the given
// project root, filling in defaults for optional fields.
func LoadConfig(projectRoot string) (*Config, error) {
	configPath := filepath.Join(projectRoot, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configFileName, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", configFileName, err)
	}

	if config.Name == "" {
		return nil, fmt.Errorf("'name' field is required in %s", configFileName)
	}
	if config.MapPath == "" {
		config.MapPath = DefaultMapPath
	}
	if config.DumpPath == "" {
		config.DumpPath = DefaultDumpPath
	}

	return &config, nil
}
