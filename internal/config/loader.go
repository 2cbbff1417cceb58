package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames lists the files searched for configuration in order.
// Checks .github/ first, then the repository root.
var FileNames = []string{
	".github/rebaseplan.yml",
	"rebaseplan.yml",
	".rebaseplan.yml",
}

// FindFile returns the first configuration file present in dir, or "".
func FindFile(dir string) string {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFromFile reads and parses a rebaseplan configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses rebaseplan configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load builds the configuration for a working directory. An explicit path
// takes precedence over auto-detection; with neither, defaults are used.
func Load(explicitPath, workDir string) (*Config, error) {
	builder := NewBuilder()

	path := explicitPath
	if path == "" && workDir != "" {
		path = FindFile(workDir)
	}

	if path != "" {
		userCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		builder.Add(userCfg)
	}

	return builder.Build()
}
