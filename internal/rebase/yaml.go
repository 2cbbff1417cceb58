package rebase

import "gopkg.in/yaml.v3"

// UnmarshalYAML implements yaml.Unmarshaler for Action.
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Action.
func (a Action) MarshalYAML() (interface{}, error) {
	if _, err := a.MarshalText(); err != nil {
		return nil, err
	}
	return string(a), nil
}
