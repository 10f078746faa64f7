package scrollscene

import "github.com/google/uuid"

// EventKind identifies a scene lifecycle event.
type EventKind string

const (
	// EventEnter fires when the tracked element starts satisfying the
	// intersection condition implied by the current margins.
	EventEnter EventKind = "enter"
	// EventLeave fires when the element stops satisfying it.
	EventLeave EventKind = "leave"
	// EventProgress fires whenever the progress value strictly changes.
	EventProgress EventKind = "progress"
)

// Event is delivered to listeners. Forward reports scroll direction:
// toward the trigger-end line for progress events, and the boundary-crossing
// direction for enter/leave.
type Event struct {
	Kind     EventKind
	Forward  bool
	Progress float64
}

// Listener receives dispatched events.
type Listener func(Event)

// Subscription identifies a registered listener so it can be removed.
type Subscription struct {
	kind EventKind
	id   string
}

// Kind returns the event kind the subscription is registered for.
func (s Subscription) Kind() EventKind { return s.kind }

type listenerEntry struct {
	id string
	fn Listener
}

// Dispatcher is a typed publish/subscribe registry keyed by event kind.
// Listeners are invoked synchronously in registration order. The zero value
// is ready to use. Dispatcher is not goroutine-safe; it shares the scene's
// single-goroutine ownership model.
type Dispatcher struct {
	listeners map[EventKind][]listenerEntry
}

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddEventListener registers fn for kind and returns a subscription handle.
func (d *Dispatcher) AddEventListener(kind EventKind, fn Listener) Subscription {
	sub := Subscription{kind: kind, id: uuid.NewString()}
	if fn == nil {
		return sub
	}
	if d.listeners == nil {
		d.listeners = make(map[EventKind][]listenerEntry)
	}
	d.listeners[kind] = append(d.listeners[kind], listenerEntry{id: sub.id, fn: fn})
	return sub
}

// RemoveEventListener drops the listener identified by sub. Unknown
// subscriptions are ignored.
func (d *Dispatcher) RemoveEventListener(sub Subscription) {
	entries := d.listeners[sub.kind]
	for i, entry := range entries {
		if entry.id == sub.id {
			d.listeners[sub.kind] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Dispatch invokes every listener registered for the event's kind.
func (d *Dispatcher) Dispatch(ev Event) {
	for _, entry := range d.listeners[ev.Kind] {
		entry.fn(ev)
	}
}

// Clear removes every listener. Used on scene destruction so late callers
// cannot observe events from a dead scene.
func (d *Dispatcher) Clear() {
	d.listeners = nil
}
