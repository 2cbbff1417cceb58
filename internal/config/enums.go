package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AutosquashMode controls what happens when a loaded plan contains
// fixup!/squash! commits.
type AutosquashMode int

const (
	// AutosquashSuggest reports that the plan can be rearranged.
	AutosquashSuggest AutosquashMode = iota
	// AutosquashApply rearranges the plan as soon as it is loaded.
	AutosquashApply
	// AutosquashOff ignores autosquash markers.
	AutosquashOff
)

func (m AutosquashMode) String() string {
	switch m {
	case AutosquashSuggest:
		return "suggest"
	case AutosquashApply:
		return "apply"
	case AutosquashOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseAutosquashMode parses a mode name, case-insensitively.
func ParseAutosquashMode(s string) (AutosquashMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "suggest":
		return AutosquashSuggest, nil
	case "apply", "auto":
		return AutosquashApply, nil
	case "off", "never", "false":
		return AutosquashOff, nil
	default:
		return 0, fmt.Errorf("unknown autosquash mode %q", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for AutosquashMode.
func (m *AutosquashMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAutosquashMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for AutosquashMode.
func (m AutosquashMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// MarshalText implements encoding.TextMarshaler so JSON shows the mode name.
func (m AutosquashMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
