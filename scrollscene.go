// Package scrollscene tracks the position of an observed element relative to
// a scrollable container and emits enter, leave, and progress events as the
// element crosses configured trigger boundaries. The package computes a
// deterministic progress signal from geometry; it performs no visual
// mutation, easing, or scheduling of its own. Hosts supply the scroll
// container, element geometry, and resize/intersection primitives through
// the Environment interface.
package scrollscene

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-scrollscene/pkg/activity"
)

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithEvaluator configures the engine used for expression-valued lengths.
// When unset, an expr-lang evaluator is built on first use.
func WithEvaluator(e Evaluator) SceneOption {
	return func(s *Scene) {
		s.evaluator = e
	}
}

// WithProgramCache registers a compiled-expression cache on the scene.
func WithProgramCache(cache ProgramCache) SceneOption {
	return func(s *Scene) {
		s.programCache = cache
	}
}

// WithFunctionRegistry configures custom functions for length expressions.
func WithFunctionRegistry(registry *FunctionRegistry) SceneOption {
	return func(s *Scene) {
		if registry == nil {
			return
		}
		s.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for length expressions.
func WithCustomFunction(name string, fn Function) SceneOption {
	return func(s *Scene) {
		if s.functions == nil {
			s.functions = NewFunctionRegistry()
		}
		_ = s.functions.Register(name, fn)
	}
}

// WithEvaluatorLogger attaches an evaluator logger to the scene.
func WithEvaluatorLogger(logger EvaluatorLogger) SceneOption {
	return func(s *Scene) {
		if logger == nil {
			s.logger = noopEvaluatorLogger{}
			return
		}
		s.logger = logger
	}
}

// WithActivityHooks attaches lifecycle activity hooks. Nil entries are
// dropped to preserve immutability of the supplied slice.
func WithActivityHooks(hooks activity.Hooks) SceneOption {
	normalized := make(activity.Hooks, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			normalized = append(normalized, hook)
		}
	}
	return func(s *Scene) {
		if len(normalized) == 0 {
			return
		}
		s.hooks = normalized
	}
}

// WithProfile adds a host-level configuration layer, weaker than the
// scene's own configuration but stronger than package defaults. Hosts use
// profiles to share settings across a group of scenes. A zero priority is
// treated as unset and promoted to ScopePriorityProfile; a layer that must
// sit at builtin priority goes through WithProfiles instead.
func WithProfile(scope Scope, cfg Config) SceneOption {
	return func(s *Scene) {
		if scope.Priority == 0 {
			scope.Priority = ScopePriorityProfile
		}
		s.profiles = append(s.profiles, NewLayer(scope, cfg))
	}
}

// WithProfiles adds pre-built configuration layers, e.g. resolved from a
// profile store. Layers keep their own scope priorities.
func WithProfiles(layers ...Layer) SceneOption {
	return func(s *Scene) {
		s.profiles = append(s.profiles, layers...)
	}
}

// New constructs a Scene driven by env, applying cfg on top of the layered
// defaults. The initial application treats every field as changed, so all
// derived state is computed before New returns. Construction fails with a
// ValidationError when the merged configuration is malformed.
func New(env Environment, cfg Config, opts ...SceneOption) (*Scene, error) {
	if env == nil {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "environment", Reason: "an Environment is required"},
		}}
	}
	s := &Scene{
		id:         uuid.NewString(),
		env:        env,
		dispatcher: NewDispatcher(),
		active:     activeUnset,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.public = s.baseConfig()
	s.container = env.ContainerAccessor()
	s.resize = env.ElementResizeWatcher(s.onElementResize)

	if err := s.Modify(cfg); err != nil {
		return nil, err
	}
	s.emitActivity(activity.BuildSceneCreatedEvent, 0)
	return s, nil
}

// baseConfig folds builtin defaults, package defaults, and profile layers
// into the configuration the scene's own fields merge onto.
func (s *Scene) baseConfig() Config {
	layers := []Layer{
		NewLayer(NewScope("builtin", ScopePriorityBuiltin, WithScopeLabel("Builtin Defaults")), builtinDefaults()),
		NewLayer(NewScope("package", ScopePriorityPackage, WithScopeLabel("Package Defaults")), snapshotDefaults()),
	}
	layers = append(layers, s.profiles...)
	stack, err := NewStack(layers...)
	if err != nil {
		// Profile scopes collide with the reserved layer names; fall back
		// to the reserved layers alone.
		stack, _ = NewStack(layers[:2]...)
	}
	return stack.Merge()
}

// Explain reports, strongest layer first, which configuration layers set the
// named field. The scene's effective configuration participates as the
// strongest layer.
func (s *Scene) Explain(field string) []Provenance {
	layers := []Layer{
		NewLayer(NewScope("scene", ScopePriorityScene, WithScopeLabel("Scene")), s.public),
		NewLayer(NewScope("builtin", ScopePriorityBuiltin, WithScopeLabel("Builtin Defaults")), builtinDefaults()),
		NewLayer(NewScope("package", ScopePriorityPackage, WithScopeLabel("Package Defaults")), snapshotDefaults()),
	}
	layers = append(layers, s.profiles...)
	stack, err := NewStack(layers...)
	if err != nil {
		return nil
	}
	return stack.Trace(field)
}

var (
	defaultsMu      sync.Mutex
	packageDefaults Config
)

// Default merges partial into the process-wide default configuration used by
// scenes created afterwards. Already-created scenes are unaffected. Set
// fields are validated; a malformed value leaves the defaults unmodified.
func Default(partial Config) error {
	if err := validatePartial(partial); err != nil {
		return err
	}
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	packageDefaults = mergeConfig(partial, packageDefaults)
	return nil
}

// snapshotDefaults copies the package defaults so later Default calls do not
// leak into existing scenes.
func snapshotDefaults() Config {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	return mergeConfig(Config{}, packageDefaults)
}

// resetDefaults clears the process-wide defaults. Tests only.
func resetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	packageDefaults = Config{}
}

// Validate checks the fields partial sets without requiring a complete
// configuration, the same check Default applies. Hosts persisting partial
// configurations use it to reject malformed snapshots before storage.
func Validate(partial Config) error {
	return validatePartial(partial)
}

// validatePartial checks only the fields partial sets, since defaults are
// legitimately incomplete.
func validatePartial(partial Config) error {
	var verr ValidationError
	checkFraction := func(field string, v *float64) {
		if v == nil {
			return
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 || *v > 1 {
			verr.Fields = append(verr.Fields, FieldError{
				Field:  field,
				Reason: "not a fraction between 0 and 1",
			})
		}
	}
	checkFraction("trackStart", partial.TrackStart)
	checkFraction("trackEnd", partial.TrackEnd)
	checkLength := func(field string, l *Length) {
		if l == nil {
			return
		}
		if reason := l.validate(); reason != "" {
			verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: reason})
		}
	}
	checkLength("offset", partial.Offset)
	checkLength("height", partial.Height)
	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}
