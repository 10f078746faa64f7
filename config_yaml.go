package scrollscene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConfigFromYAML decodes a partial Config from a YAML document, e.g.
//
//	horizontal: false
//	trackStart: 0.8
//	trackEnd: 0.2
//	offset: "10%"
//	height: "50%"
//
// Lengths accept numbers (pixels) or the textual forms of ParseLength.
func ConfigFromYAML(data []byte) (Config, error) {
	var payload configPayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return Config{}, fmt.Errorf("scrollscene: decode yaml config: %w", err)
	}
	cfg := payload.config()
	if err := validatePartial(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultsFromYAML decodes a YAML document and merges it into the
// process-wide defaults, as Default does.
func DefaultsFromYAML(data []byte) error {
	cfg, err := ConfigFromYAML(data)
	if err != nil {
		return err
	}
	return Default(cfg)
}

// UnmarshalYAML accepts a YAML number (pixels) or any textual form accepted
// by ParseLength.
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("scrollscene: length must be a scalar, got %v", node.Kind)
	}
	var num float64
	if err := node.Decode(&num); err == nil {
		*l = Px(num)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("scrollscene: length must be a number or string")
	}
	parsed, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML renders the length in its textual form.
func (l Length) MarshalYAML() (any, error) {
	return l.String(), nil
}
