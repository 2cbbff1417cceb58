package config

import "fmt"

// Builder constructs a Config by layering overrides on top of defaults.
type Builder struct {
	overrides []*Config
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds a configuration override. Overrides are applied in order:
// later overrides take precedence over earlier ones.
func (b *Builder) Add(override *Config) *Builder {
	if override != nil {
		b.overrides = append(b.overrides, override)
	}
	return b
}

// Build constructs the final configuration by starting with defaults,
// applying all overrides, and validating.
func (b *Builder) Build() (*Config, error) {
	cfg := CreateDefaultConfiguration()

	for _, override := range b.overrides {
		mergeConfig(cfg, override)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig applies non-nil fields from src to dst.
func mergeConfig(dst, src *Config) {
	if src.Upstream != nil {
		dst.Upstream = src.Upstream
	}
	if src.ShortShaLength != nil {
		dst.ShortShaLength = src.ShortShaLength
	}
	if src.Autosquash != nil {
		dst.Autosquash = src.Autosquash
	}
	if src.BlockOnErrors != nil {
		dst.BlockOnErrors = src.BlockOnErrors
	}
	if src.Output != nil {
		dst.Output = src.Output
	}
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if cfg.Upstream != nil && *cfg.Upstream == "" {
		return fmt.Errorf("upstream must not be empty")
	}

	if cfg.ShortShaLength != nil {
		n := *cfg.ShortShaLength
		if n < minShortShaLength || n > maxShortShaLength {
			return fmt.Errorf("short-sha-length %d out of range [%d, %d]", n, minShortShaLength, maxShortShaLength)
		}
	}

	if cfg.Output != nil {
		switch *cfg.Output {
		case OutputText, OutputJSON, OutputYAML:
		default:
			return fmt.Errorf("unknown output format %q", *cfg.Output)
		}
	}

	return nil
}
