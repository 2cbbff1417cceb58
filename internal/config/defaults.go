package config

// Output formats understood by the CLI and the output package.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const (
	minShortShaLength = 4
	maxShortShaLength = 40
)

// CreateDefaultConfiguration returns a Config with all default values populated.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Upstream:       stringPtr("main"),
		ShortShaLength: intPtr(7),
		Autosquash:     autosquashPtr(AutosquashSuggest),
		BlockOnErrors:  boolPtr(true),
		Output:         stringPtr(OutputText),
	}
}
