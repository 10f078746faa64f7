package scrollscene

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit identifies how a Length value is interpreted.
type Unit int

const (
	// UnitPixel is an absolute length in pixels.
	UnitPixel Unit = iota
	// UnitPercent is a length relative to the tracked element's extent along
	// the active axis, where 100 means the full element.
	UnitPercent
	// UnitExpr is a length computed by the configured expression evaluator
	// against live geometry.
	UnitExpr
)

// String returns the unit suffix used in textual representations.
func (u Unit) String() string {
	switch u {
	case UnitPercent:
		return "%"
	case UnitExpr:
		return "expr"
	default:
		return "px"
	}
}

// Length is a pixel, percent-of-element, or expression-valued distance. The
// zero value is 0px.
type Length struct {
	Value float64
	Unit  Unit
	Expr  string
}

// Px returns an absolute pixel length.
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPixel}
}

// Percent returns a length relative to the element's extent; 100 is the full
// element.
func Percent(v float64) Length {
	return Length{Value: v, Unit: UnitPercent}
}

// Expr returns a length computed by the scene's evaluator. The expression
// sees the live geometry bindings documented on EvalContext.
func Expr(expression string) Length {
	return Length{Unit: UnitExpr, Expr: expression}
}

// ParseLength converts the textual forms accepted in configuration payloads:
// "120px" or a bare number parse as pixels, "35%" as percent of the element,
// and anything else is treated as an evaluator expression.
func ParseLength(s string) (Length, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Length{}, fmt.Errorf("scrollscene: empty length")
	}
	if strings.HasSuffix(trimmed, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(trimmed, "%")), 64)
		if err != nil {
			return Length{}, fmt.Errorf("scrollscene: malformed percent length %q", s)
		}
		return Percent(v), nil
	}
	numeric := trimmed
	if strings.HasSuffix(trimmed, "px") {
		numeric = strings.TrimSpace(strings.TrimSuffix(trimmed, "px"))
		v, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			return Length{}, fmt.Errorf("scrollscene: malformed pixel length %q", s)
		}
		return Px(v), nil
	}
	if v, err := strconv.ParseFloat(numeric, 64); err == nil {
		return Px(v), nil
	}
	return Expr(trimmed), nil
}

// String renders the length in its parseable textual form.
func (l Length) String() string {
	switch l.Unit {
	case UnitPercent:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	case UnitExpr:
		return l.Expr
	default:
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "px"
	}
}

// IsZero reports whether the length statically resolves to zero pixels.
// Expressions are never considered zero since their value depends on live
// geometry.
func (l Length) IsZero() bool {
	return l.Unit != UnitExpr && l.Value == 0
}

// IsFullElement reports whether the length is exactly 100% of the element.
func (l Length) IsFullElement() bool {
	return l.Unit == UnitPercent && l.Value == 100
}

// resolve converts the length to pixels given the element extent along the
// active axis. Expression lengths are delegated to the resolver.
func (l Length) resolve(elementSize float64, r exprResolver) (float64, error) {
	switch l.Unit {
	case UnitPercent:
		return l.Value / 100 * elementSize, nil
	case UnitExpr:
		if r == nil {
			return 0, ErrNoEvaluator
		}
		return r.resolveExpr(l.Expr, elementSize)
	default:
		return l.Value, nil
	}
}

// validate reports a reason string when the length cannot be used, or "".
func (l Length) validate() string {
	switch l.Unit {
	case UnitExpr:
		if strings.TrimSpace(l.Expr) == "" {
			return "empty expression"
		}
	default:
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) {
			return "value must be finite"
		}
	}
	return ""
}

// MarshalJSON renders the length in its textual form.
func (l Length) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts a JSON number (pixels) or any textual form accepted
// by ParseLength.
func (l *Length) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*l = Px(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("scrollscene: length must be a number or string")
	}
	parsed, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// exprResolver resolves expression lengths against live geometry. Implemented
// by the Scene, which owns the evaluator and geometry access.
type exprResolver interface {
	resolveExpr(expression string, elementSize float64) (float64, error)
}
