package scrollscene

import (
	"context"
	"fmt"

	"github.com/goliatone/go-scrollscene/pkg/activity"
)

// activeState is the tri-state intersection condition. The unset state only
// exists before the first intersection notification; its transition to
// inactive is silent.
type activeState int

const (
	activeUnset activeState = iota
	activeFalse
	activeTrue
)

// Scene tracks one element against one scroll container and emits enter,
// leave, and progress events as the element crosses the configured trigger
// boundaries. All state is owned by the scene and mutated only inside its
// own synchronous handlers; the host must deliver watcher callbacks from a
// single goroutine.
type Scene struct {
	id         string
	env        Environment
	dispatcher *Dispatcher

	public  Config
	cfg     settings
	applied bool

	container    ContainerAccessor
	resize       ElementResizeWatcher
	intersection IntersectionWatcher

	elementSize      float64
	elementSizeValid bool
	natural          bool
	active           activeState
	progress         float64
	destroyed        bool

	evaluator    Evaluator
	programCache ProgramCache
	functions    *FunctionRegistry
	logger       EvaluatorLogger
	hooks        activity.Hooks
	profiles     []Layer
}

// ID returns the scene's identity used in activity events.
func (s *Scene) ID() string { return s.id }

// Progress returns the last computed progress value in [0,1]. While the
// scene is inactive the value is frozen at its last active reading.
func (s *Scene) Progress() float64 { return s.progress }

// Active reports whether the element currently satisfies the intersection
// condition implied by the margins.
func (s *Scene) Active() bool { return s.active == activeTrue }

// Destroyed reports whether Destroy has run.
func (s *Scene) Destroyed() bool { return s.destroyed }

// Modify merges partial onto the current configuration, validates the
// result, and reconciles derived state for the fields whose normalised value
// changed. A change set that normalises to the current configuration is a
// no-op: nothing recomputes and no events fire. On validation failure the
// previous configuration stays fully in effect.
func (s *Scene) Modify(partial Config) error {
	if s.destroyed {
		return ErrDestroyed
	}
	merged := mergeConfig(partial, s.public)
	next, err := validateConfig(merged)
	if err != nil {
		return err
	}
	if err := s.checkExpressions(next); err != nil {
		return err
	}

	changed := diffSettings(s.cfg, next)
	if s.applied && changed == 0 {
		// Reference identity of the public config may change, derived
		// state must not.
		s.public = merged
		return nil
	}
	if !s.applied {
		changed = allFields
	}

	s.public = merged
	s.cfg = next
	firstApply := !s.applied
	s.applied = true

	if err := s.reconcile(changed); err != nil {
		return err
	}
	if !firstApply {
		s.emitActivity(activity.BuildSceneModifiedEvent, changed)
	}
	return nil
}

// checkExpressions compiles expression-valued lengths so malformed
// expressions surface synchronously as validation failures rather than
// during a notification handler.
func (s *Scene) checkExpressions(next settings) error {
	var verr ValidationError
	check := func(field string, l Length) {
		if l.Unit != UnitExpr {
			return
		}
		evaluator, err := s.resolveEvaluator()
		if err != nil {
			verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: err.Error()})
			return
		}
		if _, err := evaluator.Compile(l.Expr); err != nil {
			verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: err.Error()})
		}
	}
	check("offset", next.offset)
	check("height", next.height)
	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

// reconcile recomputes derived state for the changed fields, in dependency
// order: natural-intersection classification before element-size caching,
// both before margins.
func (s *Scene) reconcile(changed fieldSet) error {
	if changed == 0 {
		return nil
	}
	if changed.has(fieldHeight | fieldOffset | fieldElement) {
		s.classifyNatural()
	}
	if changed.has(fieldHeight | fieldElement | fieldAxis) {
		s.refreshElementSize()
	}
	if changed.has(fieldElement) {
		s.resize.Observe(s.cfg.element)
	}
	if changed.has(fieldContainer | fieldAxis) {
		if err := s.container.Attach(s.cfg.container, s.cfg.axis, s.onContainerEvent); err != nil {
			return fmt.Errorf("scrollscene: container attach: %w", err)
		}
	}
	return s.pushMargins(changed.has(fieldElement))
}

// classifyNatural recomputes whether the trigger window equals the element's
// full box, letting margin and progress derivation skip the offset/height
// correction entirely.
func (s *Scene) classifyNatural() {
	s.natural = s.cfg.offset.IsZero() && s.cfg.height.IsFullElement()
}

// refreshElementSize re-measures the cached element extent along the active
// axis.
func (s *Scene) refreshElementSize() {
	s.elementSize = s.cfg.element.Bounds().Extent(s.cfg.axis)
	s.elementSizeValid = true
}

// pushMargins rederives the intersection margins and hands them to the
// intersection watcher, creating it on first use and updating it in place
// afterwards.
func (s *Scene) pushMargins(reobserve bool) error {
	margin, err := s.deriveMargins()
	if err != nil {
		return err
	}
	opts := IntersectionOptions{Margin: margin, Root: s.cfg.container}
	if s.intersection == nil {
		s.intersection = s.env.NewIntersectionWatcher(opts, s.onIntersection)
		s.intersection.Observe(s.cfg.element)
		return nil
	}
	s.intersection.UpdateOptions(opts)
	if reobserve {
		s.intersection.Observe(s.cfg.element)
	}
	return nil
}

func (s *Scene) deriveMargins() (Margin, error) {
	containerSize := s.container.Size()

	var startOffset, endOffset float64
	if !s.natural && containerSize > 0 {
		if !s.elementSizeValid {
			s.refreshElementSize()
		}
		offsetPx, err := s.cfg.offset.resolve(s.elementSize, s)
		if err != nil {
			return Margin{}, err
		}
		heightPx, err := s.cfg.height.resolve(s.elementSize, s)
		if err != nil {
			return Margin{}, err
		}
		startOffset = offsetPx / containerSize
		relativeHeight := heightPx / containerSize
		endOffset = relativeHeight - s.elementSize/containerSize
	}

	return deriveMargin(marginInputs{
		axis:        s.cfg.axis,
		trackStart:  s.cfg.trackStart,
		trackEnd:    s.cfg.trackEnd,
		startOffset: startOffset,
		endOffset:   endOffset,
	}), nil
}

// onElementResize handles element-box notifications. Under natural
// intersection the cached size is immaterial for margins, so only progress
// is refreshed.
func (s *Scene) onElementResize() {
	if s.destroyed {
		return
	}
	size := s.cfg.element.Bounds().Extent(s.cfg.axis)
	if !s.natural && (!s.elementSizeValid || size != s.elementSize) {
		s.elementSize = size
		s.elementSizeValid = true
		// Evaluation failures are already routed to the evaluator logger;
		// a notification handler has nowhere else to report them.
		_ = s.pushMargins(false)
	}
	s.updateProgress()
}

// onContainerEvent handles container notifications. Only resize events
// affect geometry; attachment changes are ignored.
func (s *Scene) onContainerEvent(ev ContainerEvent) {
	if s.destroyed || ev.Kind != ContainerResize {
		return
	}
	_ = s.pushMargins(false)
	s.updateProgress()
}

// onIntersection drives the active-state machine. Notifications for a
// stale element, or after destruction, are out of scope and ignored.
func (s *Scene) onIntersection(intersecting bool, target Element) {
	if s.destroyed || target != s.cfg.element {
		return
	}

	if intersecting {
		if s.active == activeTrue {
			return
		}
		forward := s.progress != 1
		s.active = activeTrue
		s.dispatcher.Dispatch(Event{Kind: EventEnter, Forward: forward, Progress: s.progress})
		s.updateProgress()
		return
	}

	switch s.active {
	case activeUnset:
		// Expected initial state before the element has ever entered view.
		s.active = activeFalse
	case activeFalse:
		// Repeated notification, nothing flipped.
	case activeTrue:
		forward := s.progress != 0
		s.active = activeFalse
		s.dispatcher.Dispatch(Event{Kind: EventLeave, Forward: forward, Progress: s.progress})
		s.updateProgress()
	}
}

// updateProgress re-measures live geometry and recomputes progress. It is a
// no-op while the scene is inactive and when the value does not strictly
// change, so redundant notifications stay idempotent.
func (s *Scene) updateProgress() {
	if s.active != activeTrue {
		return
	}

	bounds := s.cfg.element.Bounds()
	elemSize := bounds.Extent(s.cfg.axis)
	elemStart := bounds.Start(s.cfg.axis)
	containerSize := s.container.Size()

	var next float64
	if containerSize > 0 {
		offsetPx, err := s.cfg.offset.resolve(elemSize, s)
		if err != nil {
			return
		}
		heightPx, err := s.cfg.height.resolve(elemSize, s)
		if err != nil {
			return
		}
		startOffset := offsetPx / containerSize
		relativeHeight := heightPx / containerSize
		relativeStart := startOffset + elemStart/containerSize
		trackDistance := s.cfg.trackStart - s.cfg.trackEnd
		passed := s.cfg.trackStart - relativeStart
		total := relativeHeight + trackDistance
		if total != 0 {
			next = clamp(passed/total, 0, 1)
		}
	}

	if next == s.progress {
		return
	}
	forward := next > s.progress
	s.progress = next
	s.dispatcher.Dispatch(Event{Kind: EventProgress, Forward: forward, Progress: next})
}

// geometry snapshots live measurements for the evaluator bindings.
func (s *Scene) geometry() Geometry {
	g := Geometry{Axis: s.cfg.axis}
	if s.cfg.element != nil {
		bounds := s.cfg.element.Bounds()
		g.ElementSize = bounds.Extent(s.cfg.axis)
		g.ElementStart = bounds.Start(s.cfg.axis)
	}
	if s.container != nil {
		g.ContainerSize = s.container.Size()
	}
	return g
}

// Destroy releases every watcher subscription and drops all listeners. It
// is idempotent; no events fire afterwards, and any late notification from
// a watcher that already delivered is discarded by the handlers.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.resize != nil {
		s.resize.Disconnect()
	}
	if s.intersection != nil {
		s.intersection.Disconnect()
	}
	if s.container != nil {
		s.container.Detach()
	}
	s.dispatcher.Clear()
	s.emitActivity(activity.BuildSceneDestroyedEvent, 0)
}

// On registers fn for kind and returns a handle usable with Off.
func (s *Scene) On(kind EventKind, fn Listener) Subscription {
	return s.dispatcher.AddEventListener(kind, fn)
}

// Off removes a listener registered with On.
func (s *Scene) Off(sub Subscription) {
	s.dispatcher.RemoveEventListener(sub)
}

// Subscribe registers fn for kind and returns a cancel function.
func (s *Scene) Subscribe(kind EventKind, fn Listener) func() {
	sub := s.On(kind, fn)
	return func() { s.Off(sub) }
}

func (s *Scene) emitActivity(build func(activity.SceneEventInput) activity.Event, changed fieldSet) {
	if !s.hooks.Enabled() {
		return
	}
	// Hook failures are the hook's concern; the scene has no recovery path.
	_ = s.hooks.Notify(context.Background(), build(activity.SceneEventInput{
		SceneID:  s.id,
		Changed:  changed.names(),
		Axis:     s.cfg.axis.String(),
		Progress: s.progress,
	}))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
