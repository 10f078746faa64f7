package scrollscene

// FieldDescriptor describes one configuration field for tooling: inspector
// panels, devtools overlays, or schema-driven editors.
type FieldDescriptor struct {
	Path  string
	Type  string
	Set   bool
	Value any
}

// DescribeConfig flattens a configuration into field descriptors, one per
// public field, reporting whether the field is set and its current value.
func DescribeConfig(cfg Config) []FieldDescriptor {
	descriptors := make([]FieldDescriptor, 0, 7)
	add := func(path, typ string) {
		value, set := configField(cfg, path)
		descriptors = append(descriptors, FieldDescriptor{
			Path:  path,
			Type:  typ,
			Set:   set,
			Value: value,
		})
	}
	add("element", "element")
	add("container", "container")
	add("horizontal", "bool")
	add("trackStart", "fraction")
	add("trackEnd", "fraction")
	add("offset", "length")
	add("height", "length")
	return descriptors
}

// DescribeEffective reports the scene's effective configuration after layer
// merging.
func (s *Scene) DescribeEffective() []FieldDescriptor {
	return DescribeConfig(s.public)
}
