package scrollscene

// Element is the observed node. Bounds must return live geometry in the
// container's viewport coordinate space, the same space the host's
// intersection primitive reasons about.
type Element interface {
	Bounds() Rect
}

// Container is the scrollable ancestor framing the tracked element. A nil
// Container in configuration means the host's top-level viewport.
type Container interface {
	Viewport() Rect
}

// ContainerEventKind distinguishes container notifications. Only resize
// events trigger geometry recomputation; attachment changes are reported for
// hosts that need them but are ignored by the scene.
type ContainerEventKind int

const (
	// ContainerResize signals the container's extent changed.
	ContainerResize ContainerEventKind = iota
	// ContainerAttach signals the accessor was re-attached to a container.
	ContainerAttach
)

// ContainerEvent is delivered by a ContainerAccessor.
type ContainerEvent struct {
	Kind ContainerEventKind
}

// ContainerAccessor wraps a scroll container and reports its extent along
// the configured axis. Implementations are scoped to a single scene.
type ContainerAccessor interface {
	// Attach binds the accessor to container (nil for the top-level
	// viewport) along axis, delivering subsequent notifications to onEvent.
	// Re-attaching replaces any previous binding.
	Attach(container Container, axis Axis, onEvent func(ContainerEvent)) error
	// Detach releases the current binding; no notifications fire afterwards.
	Detach()
	// Size returns the container's current extent along the attached axis.
	Size() float64
}

// ElementResizeWatcher notifies when the observed element's box changes.
// Notifications carry no payload beyond "recheck now" and are expected to be
// rate-limited by the host to at most one per rendering frame.
type ElementResizeWatcher interface {
	// Observe starts watching el, replacing any previous target.
	Observe(el Element)
	// Disconnect stops watching; no notifications fire afterwards.
	Disconnect()
}

// IntersectionOptions configure an IntersectionWatcher: the margin expands
// or contracts the root box per side before intersection testing, and Root
// selects the container (nil for the top-level viewport).
type IntersectionOptions struct {
	Margin Margin
	Root   Container
}

// IntersectionFunc receives intersection flips. Target echoes the observed
// element so consumers can discard stale notifications after an element
// swap.
type IntersectionFunc func(intersecting bool, target Element)

// IntersectionWatcher wraps the host's viewport-intersection primitive.
type IntersectionWatcher interface {
	// Observe starts observing el against the current options.
	Observe(el Element)
	// UpdateOptions replaces margin and root in place, keeping the observed
	// element attached.
	UpdateOptions(opts IntersectionOptions)
	// Disconnect stops observation; no notifications fire afterwards.
	Disconnect()
}

// Environment is the host side of the scene: it manufactures the watcher
// collaborators the scene owns for its lifetime. Implementations decide how
// the callbacks are scheduled; the scene assumes they are invoked from a
// single goroutine.
type Environment interface {
	// ContainerAccessor returns a fresh accessor for one scene.
	ContainerAccessor() ContainerAccessor
	// ElementResizeWatcher returns a fresh watcher delivering notifications
	// to onResize.
	ElementResizeWatcher(onResize func()) ElementResizeWatcher
	// NewIntersectionWatcher builds a watcher with the given options,
	// delivering flips to onChange.
	NewIntersectionWatcher(opts IntersectionOptions, onChange IntersectionFunc) IntersectionWatcher
}
