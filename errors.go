package scrollscene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDestroyed is returned by operations invoked after Destroy.
var ErrDestroyed = errors.New("scrollscene: scene destroyed")

// FieldError names a configuration field and why it was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError reports every offending field of a rejected configuration.
// The configuration under validation is never partially applied: callers see
// either a fully normalised replacement or this error with the previous
// settings intact.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "scrollscene: invalid configuration"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "scrollscene: invalid configuration: " + strings.Join(parts, "; ")
}

// Has reports whether the named field is among the offending ones.
func (e *ValidationError) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
