// Package simhost provides an in-memory Environment for scrollscene: a
// scrollable viewport with elements laid out in content coordinates,
// percent-margin intersection testing, and explicit delivery of resize and
// intersection notifications. It plays the role a rendering host plays in
// production and keeps scene behaviour reproducible in tests and examples.
package simhost

import (
	scrollscene "github.com/goliatone/go-scrollscene"
)

// Host simulates a top-level scrollable viewport. Notifications are
// delivered synchronously from Step, ScrollTo, Resize, and the element
// mutators, always on the caller's goroutine.
type Host struct {
	width   float64
	height  float64
	scrollX float64
	scrollY float64

	accessors     []*containerAccessor
	resizers      []*resizeWatcher
	intersections []*intersectionWatcher
}

// New builds a host whose viewport has the given extent.
func New(width, height float64) *Host {
	return &Host{width: width, height: height}
}

// Viewport implements scrollscene.Container: the viewport box in viewport
// coordinates.
func (h *Host) Viewport() scrollscene.Rect {
	return scrollscene.Rect{Width: h.width, Height: h.height}
}

// NewElement places an element at the given content-coordinate rect.
func (h *Host) NewElement(rect scrollscene.Rect) *Element {
	return &Element{host: h, rect: rect}
}

// ScrollTo moves the scroll position and rechecks intersections.
func (h *Host) ScrollTo(x, y float64) {
	h.scrollX = x
	h.scrollY = y
	h.recheckIntersections()
}

// Resize changes the viewport extent, notifies container accessors, and
// rechecks intersections.
func (h *Host) Resize(width, height float64) {
	h.width = width
	h.height = height
	for _, acc := range h.accessors {
		acc.notify(scrollscene.ContainerEvent{Kind: scrollscene.ContainerResize})
	}
	h.recheckIntersections()
}

// Step delivers pending intersection state without moving anything. The
// first Step after an Observe delivers the watcher's initial notification.
func (h *Host) Step() {
	h.recheckIntersections()
}

func (h *Host) recheckIntersections() {
	for _, w := range h.intersections {
		w.recheck()
	}
}

func (h *Host) notifyElementResize(el *Element) {
	for _, w := range h.resizers {
		if w.target == el {
			w.notify()
		}
	}
	h.recheckIntersections()
}

// ContainerAccessor implements scrollscene.Environment.
func (h *Host) ContainerAccessor() scrollscene.ContainerAccessor {
	acc := &containerAccessor{host: h}
	h.accessors = append(h.accessors, acc)
	return acc
}

// ElementResizeWatcher implements scrollscene.Environment.
func (h *Host) ElementResizeWatcher(onResize func()) scrollscene.ElementResizeWatcher {
	w := &resizeWatcher{host: h, onResize: onResize}
	h.resizers = append(h.resizers, w)
	return w
}

// NewIntersectionWatcher implements scrollscene.Environment.
func (h *Host) NewIntersectionWatcher(opts scrollscene.IntersectionOptions, onChange scrollscene.IntersectionFunc) scrollscene.IntersectionWatcher {
	w := &intersectionWatcher{host: h, opts: opts, onChange: onChange}
	h.intersections = append(h.intersections, w)
	return w
}

// Element is a tracked box laid out in content coordinates. Bounds reports
// viewport coordinates, shifted by the current scroll position.
type Element struct {
	host *Host
	rect scrollscene.Rect
}

// Bounds implements scrollscene.Element.
func (e *Element) Bounds() scrollscene.Rect {
	return scrollscene.Rect{
		X:      e.rect.X - e.host.scrollX,
		Y:      e.rect.Y - e.host.scrollY,
		Width:  e.rect.Width,
		Height: e.rect.Height,
	}
}

// SetRect replaces the element's content-coordinate box and notifies resize
// watchers observing it.
func (e *Element) SetRect(rect scrollscene.Rect) {
	e.rect = rect
	e.host.notifyElementResize(e)
}

// MoveTo repositions the element without resizing it. Position changes do
// not fire resize notifications; they surface through intersection checks.
func (e *Element) MoveTo(x, y float64) {
	e.rect.X = x
	e.rect.Y = y
	e.host.recheckIntersections()
}

type containerAccessor struct {
	host     *Host
	axis     scrollscene.Axis
	onEvent  func(scrollscene.ContainerEvent)
	attached bool
}

func (a *containerAccessor) Attach(container scrollscene.Container, axis scrollscene.Axis, onEvent func(scrollscene.ContainerEvent)) error {
	// Only the top-level viewport is simulated; a non-nil container must be
	// the host itself.
	a.axis = axis
	a.onEvent = onEvent
	wasAttached := a.attached
	a.attached = true
	if wasAttached && onEvent != nil {
		onEvent(scrollscene.ContainerEvent{Kind: scrollscene.ContainerAttach})
	}
	return nil
}

func (a *containerAccessor) Detach() {
	a.attached = false
	a.onEvent = nil
}

func (a *containerAccessor) Size() float64 {
	if !a.attached {
		return 0
	}
	if a.axis == scrollscene.AxisHorizontal {
		return a.host.width
	}
	return a.host.height
}

func (a *containerAccessor) notify(ev scrollscene.ContainerEvent) {
	if a.attached && a.onEvent != nil {
		a.onEvent(ev)
	}
}

type resizeWatcher struct {
	host     *Host
	onResize func()
	target   *Element
}

func (w *resizeWatcher) Observe(el scrollscene.Element) {
	if sim, ok := el.(*Element); ok {
		w.target = sim
		return
	}
	w.target = nil
}

func (w *resizeWatcher) Disconnect() {
	w.target = nil
}

func (w *resizeWatcher) notify() {
	if w.target != nil && w.onResize != nil {
		w.onResize()
	}
}

type intersectionWatcher struct {
	host     *Host
	opts     scrollscene.IntersectionOptions
	onChange scrollscene.IntersectionFunc
	target   scrollscene.Element
	last     bool
	reported bool
}

func (w *intersectionWatcher) Observe(el scrollscene.Element) {
	w.target = el
	w.reported = false
}

func (w *intersectionWatcher) UpdateOptions(opts scrollscene.IntersectionOptions) {
	w.opts = opts
	// Margin changes can flip the state without any scrolling; the next
	// recheck picks it up.
}

func (w *intersectionWatcher) Disconnect() {
	w.target = nil
	w.reported = false
}

func (w *intersectionWatcher) recheck() {
	if w.target == nil || w.onChange == nil {
		return
	}
	intersecting := w.intersects()
	if w.reported && intersecting == w.last {
		return
	}
	w.last = intersecting
	w.reported = true
	w.onChange(intersecting, w.target)
}

// intersects tests the element against the viewport box expanded by the
// configured percent margins, inclusive at the edges like a zero-threshold
// intersection observer.
func (w *intersectionWatcher) intersects() bool {
	top, right, bottom, left, err := w.opts.Margin.Fractions()
	if err != nil {
		return false
	}

	boxTop := -top * w.host.height
	boxBottom := w.host.height + bottom*w.host.height
	boxLeft := -left * w.host.width
	boxRight := w.host.width + right*w.host.width

	bounds := w.target.Bounds()
	return bounds.Top() <= boxBottom && bounds.Bottom() >= boxTop &&
		bounds.Left() <= boxRight && bounds.Right() >= boxLeft
}
