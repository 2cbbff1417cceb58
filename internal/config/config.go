// Package config provides YAML configuration loading, defaults, config
// merging, and effective configuration resolution for rebaseplan.
package config

// Config is the root configuration for rebaseplan. All optional fields are
// pointers to support merge semantics during configuration building.
type Config struct {
	Upstream       *string         `yaml:"upstream" json:"upstream"`
	ShortShaLength *int            `yaml:"short-sha-length" json:"shortShaLength"`
	Autosquash     *AutosquashMode `yaml:"autosquash" json:"autosquash"`
	BlockOnErrors  *bool           `yaml:"block-on-errors" json:"blockOnErrors"`
	Output         *string         `yaml:"output" json:"output"`
}

// EffectiveConfiguration is a fully resolved configuration with all fields
// guaranteed to have values.
type EffectiveConfiguration struct {
	Upstream       string
	ShortShaLength int
	Autosquash     AutosquashMode
	BlockOnErrors  bool
	Output         string
}

// Effective resolves the configuration. Fields left unset fall back to the
// defaults, so a Config that did not come from Builder is still usable.
func (c *Config) Effective() EffectiveConfiguration {
	d := CreateDefaultConfiguration()
	merged := *d
	if c != nil {
		mergeConfig(&merged, c)
	}

	return EffectiveConfiguration{
		Upstream:       *merged.Upstream,
		ShortShaLength: *merged.ShortShaLength,
		Autosquash:     *merged.Autosquash,
		BlockOnErrors:  *merged.BlockOnErrors,
		Output:         *merged.Output,
	}
}
