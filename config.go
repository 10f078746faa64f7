package scrollscene

import (
	"fmt"
	"math"
	"strings"
)

// Config is the user-facing, partially specified configuration. Nil fields
// are "not set" and inherit from weaker layers (scene → profile → package
// defaults → builtin defaults) when merged. A nil Container with no stronger
// layer means the host's top-level viewport.
type Config struct {
	Element    Element
	Container  Container
	Horizontal *bool
	TrackStart *float64
	TrackEnd   *float64
	Offset     *Length
	Height     *Length
}

// Bool returns a pointer suitable for Config's optional boolean field.
func Bool(v bool) *bool { return &v }

// Float returns a pointer suitable for Config's optional fraction fields.
func Float(v float64) *float64 { return &v }

// LengthPtr returns a pointer suitable for Config's optional length fields.
func LengthPtr(l Length) *Length { return &l }

// builtinDefaults is the weakest configuration layer: vertical axis, full
// container travel, natural trigger window.
func builtinDefaults() Config {
	return Config{
		Horizontal: Bool(false),
		TrackStart: Float(1),
		TrackEnd:   Float(0),
		Offset:     LengthPtr(Px(0)),
		Height:     LengthPtr(Percent(100)),
	}
}

// mergeConfig fills strong's unset fields from weak. Set fields always win;
// inputs are not mutated. Interface fields (Element, Container) merge on
// nilness, pointer fields are copied so layers stay detached.
func mergeConfig(strong, weak Config) Config {
	out := Config{
		Element:   strong.Element,
		Container: strong.Container,
	}
	if out.Element == nil {
		out.Element = weak.Element
	}
	if out.Container == nil {
		out.Container = weak.Container
	}
	out.Horizontal = mergeBool(strong.Horizontal, weak.Horizontal)
	out.TrackStart = mergeFloat(strong.TrackStart, weak.TrackStart)
	out.TrackEnd = mergeFloat(strong.TrackEnd, weak.TrackEnd)
	out.Offset = mergeLength(strong.Offset, weak.Offset)
	out.Height = mergeLength(strong.Height, weak.Height)
	return out
}

func mergeBool(strong, weak *bool) *bool {
	if strong != nil {
		v := *strong
		return &v
	}
	if weak != nil {
		v := *weak
		return &v
	}
	return nil
}

func mergeFloat(strong, weak *float64) *float64 {
	if strong != nil {
		v := *strong
		return &v
	}
	if weak != nil {
		v := *weak
		return &v
	}
	return nil
}

func mergeLength(strong, weak *Length) *Length {
	if strong != nil {
		v := *strong
		return &v
	}
	if weak != nil {
		v := *weak
		return &v
	}
	return nil
}

// settings is the normalised, fully resolved private configuration. It is
// replaced atomically: a rejected change never leaves partial state behind.
type settings struct {
	element    Element
	container  Container
	axis       Axis
	trackStart float64
	trackEnd   float64
	offset     Length
	height     Length
}

// validateConfig checks a fully merged configuration and either returns its
// normalised settings or a ValidationError naming every offending field.
func validateConfig(cfg Config) (settings, error) {
	var verr ValidationError
	fail := func(field, reason string) {
		verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: reason})
	}

	if cfg.Element == nil {
		fail("element", "an observed element is required")
	}
	checkFraction := func(field string, v *float64) float64 {
		if v == nil {
			fail(field, "missing")
			return 0
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 || *v > 1 {
			fail(field, fmt.Sprintf("%v is not a fraction between 0 and 1", *v))
			return 0
		}
		return *v
	}
	trackStart := checkFraction("trackStart", cfg.TrackStart)
	trackEnd := checkFraction("trackEnd", cfg.TrackEnd)

	checkLength := func(field string, l *Length, allowNegative bool) Length {
		if l == nil {
			fail(field, "missing")
			return Length{}
		}
		if reason := l.validate(); reason != "" {
			fail(field, reason)
			return *l
		}
		if !allowNegative && l.Unit != UnitExpr && l.Value < 0 {
			fail(field, "must not be negative")
		}
		return *l
	}
	offset := checkLength("offset", cfg.Offset, true)
	height := checkLength("height", cfg.Height, false)

	if len(verr.Fields) > 0 {
		return settings{}, &verr
	}

	axis := AxisVertical
	if cfg.Horizontal != nil && *cfg.Horizontal {
		axis = AxisHorizontal
	}
	return settings{
		element:    cfg.Element,
		container:  cfg.Container,
		axis:       axis,
		trackStart: trackStart,
		trackEnd:   trackEnd,
		offset:     offset,
		height:     height,
	}, nil
}

// fieldSet is the shallow-diff result: which normalised fields changed.
type fieldSet uint

const (
	fieldElement fieldSet = 1 << iota
	fieldContainer
	fieldAxis
	fieldTrackStart
	fieldTrackEnd
	fieldOffset
	fieldHeight

	allFields = fieldElement | fieldContainer | fieldAxis |
		fieldTrackStart | fieldTrackEnd | fieldOffset | fieldHeight
)

func (s fieldSet) has(f fieldSet) bool { return s&f != 0 }

// Names lists the changed fields for diagnostics and activity metadata.
func (s fieldSet) names() []string {
	var out []string
	for _, entry := range []struct {
		f    fieldSet
		name string
	}{
		{fieldElement, "element"},
		{fieldContainer, "container"},
		{fieldAxis, "axis"},
		{fieldTrackStart, "trackStart"},
		{fieldTrackEnd, "trackEnd"},
		{fieldOffset, "offset"},
		{fieldHeight, "height"},
	} {
		if s.has(entry.f) {
			out = append(out, entry.name)
		}
	}
	return out
}

func (s fieldSet) String() string {
	names := s.names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// diffSettings shallow-compares two normalised configurations. Element and
// container compare by interface identity; lengths compare by value, so an
// offset re-expressed with identical unit and magnitude is not a change.
func diffSettings(old, next settings) fieldSet {
	var changed fieldSet
	if old.element != next.element {
		changed |= fieldElement
	}
	if old.container != next.container {
		changed |= fieldContainer
	}
	if old.axis != next.axis {
		changed |= fieldAxis
	}
	if old.trackStart != next.trackStart {
		changed |= fieldTrackStart
	}
	if old.trackEnd != next.trackEnd {
		changed |= fieldTrackEnd
	}
	if old.offset != next.offset {
		changed |= fieldOffset
	}
	if old.height != next.height {
		changed |= fieldHeight
	}
	return changed
}
