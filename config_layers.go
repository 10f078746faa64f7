package scrollscene

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// Recommended priorities for common layering patterns. Higher numbers
	// win.
	ScopePriorityBuiltin = 0
	ScopePriorityPackage = 100
	ScopePriorityProfile = 200
	ScopePriorityScene   = 300
)

// Scope models a named precedence bucket for a configuration layer (builtin,
// package defaults, a host profile, the scene itself).
type Scope struct {
	Name     string
	Label    string
	Priority int
}

// ScopeOption configures metadata on Scope creation.
type ScopeOption func(*Scope)

// WithScopeLabel sets a human-friendly label on the scope.
func WithScopeLabel(label string) ScopeOption {
	return func(s *Scope) {
		s.Label = label
	}
}

// NewScope builds a Scope. Validation is deferred to Stack construction so
// callers can assemble scopes before deciding precedence.
func NewScope(name string, priority int, opts ...ScopeOption) Scope {
	s := Scope{Name: name, Priority: priority}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// Layer pairs a scope definition with the configuration captured for that
// scope.
type Layer struct {
	Scope  Scope
	Config Config
}

// NewLayer builds a Layer.
func NewLayer(scope Scope, cfg Config) Layer {
	return Layer{Scope: scope, Config: cfg}
}

// Stack orders configuration layers by precedence and folds them into one
// effective configuration.
type Stack struct {
	layers []Layer
}

// NewStack validates and orders layers strongest-first. Scope names must be
// non-empty and unique.
func NewStack(layers ...Layer) (*Stack, error) {
	if len(layers) == 0 {
		return nil, errors.New("scrollscene: stack requires at least one layer")
	}
	seen := make(map[string]struct{}, len(layers))
	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	for _, layer := range ordered {
		if layer.Scope.Name == "" {
			return nil, errors.New("scrollscene: layer scope name must not be empty")
		}
		if _, dup := seen[layer.Scope.Name]; dup {
			return nil, fmt.Errorf("scrollscene: duplicate layer scope %q", layer.Scope.Name)
		}
		seen[layer.Scope.Name] = struct{}{}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Scope.Priority > ordered[j].Scope.Priority
	})
	return &Stack{layers: ordered}, nil
}

// Merge folds the stack into one configuration: explicit settings from
// stronger layers win, unset fields fill from weaker ones.
func (st *Stack) Merge() Config {
	var merged Config
	if st == nil || len(st.layers) == 0 {
		return merged
	}
	merged = st.layers[len(st.layers)-1].Config
	for i := len(st.layers) - 2; i >= 0; i-- {
		merged = mergeConfig(st.layers[i].Config, merged)
	}
	return merged
}

// Provenance details how a specific layer contributed to a traced field.
type Provenance struct {
	Scope Scope
	Found bool
	Value any
}

// Trace reports, strongest layer first, which layers set the named field and
// with what value. Unknown field names yield entries with Found == false.
func (st *Stack) Trace(field string) []Provenance {
	if st == nil {
		return nil
	}
	out := make([]Provenance, 0, len(st.layers))
	for _, layer := range st.layers {
		value, found := configField(layer.Config, field)
		out = append(out, Provenance{
			Scope: layer.Scope,
			Found: found,
			Value: value,
		})
	}
	return out
}

// configField extracts a field by its configuration name, reporting whether
// the layer sets it.
func configField(cfg Config, field string) (any, bool) {
	switch field {
	case "element":
		if cfg.Element == nil {
			return nil, false
		}
		return cfg.Element, true
	case "container":
		if cfg.Container == nil {
			return nil, false
		}
		return cfg.Container, true
	case "horizontal":
		if cfg.Horizontal == nil {
			return nil, false
		}
		return *cfg.Horizontal, true
	case "trackStart":
		if cfg.TrackStart == nil {
			return nil, false
		}
		return *cfg.TrackStart, true
	case "trackEnd":
		if cfg.TrackEnd == nil {
			return nil, false
		}
		return *cfg.TrackEnd, true
	case "offset":
		if cfg.Offset == nil {
			return nil, false
		}
		return *cfg.Offset, true
	case "height":
		if cfg.Height == nil {
			return nil, false
		}
		return *cfg.Height, true
	default:
		return nil, false
	}
}
