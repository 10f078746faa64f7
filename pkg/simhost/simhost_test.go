package simhost

import (
	"math"
	"testing"

	scrollscene "github.com/goliatone/go-scrollscene"
)

func collect(s *scrollscene.Scene) *[]scrollscene.Event {
	var events []scrollscene.Event
	for _, kind := range []scrollscene.EventKind{
		scrollscene.EventEnter,
		scrollscene.EventLeave,
		scrollscene.EventProgress,
	} {
		s.On(kind, func(ev scrollscene.Event) { events = append(events, ev) })
	}
	return &events
}

func TestElementBoundsFollowScroll(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})

	if got := el.Bounds(); got.Y != 1500 {
		t.Fatalf("bounds before scroll = %+v", got)
	}
	host.ScrollTo(50, 600)
	got := el.Bounds()
	if got.X != 50 || got.Y != 900 {
		t.Fatalf("bounds after scroll = %+v", got)
	}
	if got.Width != 600 || got.Height != 100 {
		t.Fatalf("scroll must not change extents: %+v", got)
	}
}

func TestContainerAccessorAxisSize(t *testing.T) {
	host := New(800, 1000)
	acc := host.ContainerAccessor()

	if acc.Size() != 0 {
		t.Fatal("detached accessors report no extent")
	}
	if err := acc.Attach(host, scrollscene.AxisVertical, nil); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if acc.Size() != 1000 {
		t.Fatalf("vertical size = %v", acc.Size())
	}
	if err := acc.Attach(host, scrollscene.AxisHorizontal, nil); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if acc.Size() != 800 {
		t.Fatalf("horizontal size = %v", acc.Size())
	}
	acc.Detach()
	if acc.Size() != 0 {
		t.Fatal("detach must drop the extent")
	}
}

func TestScrollThroughLifecycle(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})
	s, err := scrollscene.New(host, scrollscene.Config{Element: el})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	events := collect(s)

	// The initial notification reports not-intersecting and stays silent.
	host.Step()
	if len(*events) != 0 {
		t.Fatalf("initial events = %v", *events)
	}
	if s.Active() {
		t.Fatal("scene should start inactive")
	}

	// Scroll the element into the viewport.
	host.ScrollTo(0, 600)
	if !s.Active() {
		t.Fatal("scene should be active once the element is in view")
	}
	if len(*events) < 2 {
		t.Fatalf("events = %v, want enter then progress", *events)
	}
	if (*events)[0].Kind != scrollscene.EventEnter || !(*events)[0].Forward {
		t.Fatalf("first event = %+v", (*events)[0])
	}
	if (*events)[1].Kind != scrollscene.EventProgress {
		t.Fatalf("second event = %+v", (*events)[1])
	}
	want := 0.1 / 1.1
	if math.Abs(s.Progress()-want) > 1e-12 {
		t.Fatalf("progress = %v, want %v", s.Progress(), want)
	}

	// Scroll fully past the element.
	host.ScrollTo(0, 1700)
	if s.Active() {
		t.Fatal("scene should be inactive past the element")
	}
	last := (*events)[len(*events)-1]
	if last.Kind != scrollscene.EventLeave || !last.Forward {
		t.Fatalf("last event = %+v, want forward leave", last)
	}

	// Scroll back up: a backward-looking re-entry.
	before := len(*events)
	host.ScrollTo(0, 600)
	if !s.Active() {
		t.Fatal("scene should re-activate")
	}
	if (*events)[before].Kind != scrollscene.EventEnter {
		t.Fatalf("re-entry event = %+v", (*events)[before])
	}
}

func TestNarrowTrackWindow(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})
	s, err := scrollscene.New(host, scrollscene.Config{
		Element:    el,
		TrackStart: scrollscene.Float(0.8),
		TrackEnd:   scrollscene.Float(0.2),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Margins shrink the trigger box to 200..800; at scroll 600 the element
	// sits at 900, below the trigger-start line.
	host.ScrollTo(0, 600)
	if s.Active() {
		t.Fatal("element below the trigger window must stay inactive")
	}

	host.ScrollTo(0, 800)
	if !s.Active() {
		t.Fatal("element inside the trigger window should activate")
	}
	want := (0.8 - 0.7) / 0.7
	if math.Abs(s.Progress()-want) > 1e-12 {
		t.Fatalf("progress = %v, want %v", s.Progress(), want)
	}
}

func TestElementResizeDrivesProgress(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})
	s, err := scrollscene.New(host, scrollscene.Config{Element: el})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host.ScrollTo(0, 600)
	before := s.Progress()

	el.SetRect(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 300})
	if s.Progress() == before {
		t.Fatal("growing the element should change progress")
	}
}

func TestViewportResizeDrivesProgress(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})
	s, err := scrollscene.New(host, scrollscene.Config{Element: el})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	host.ScrollTo(0, 600)
	before := s.Progress()

	host.Resize(800, 500)
	if s.Progress() == before {
		t.Fatal("viewport resize should recompute progress")
	}
}

func TestDestroySilencesHost(t *testing.T) {
	host := New(800, 1000)
	el := host.NewElement(scrollscene.Rect{X: 100, Y: 1500, Width: 600, Height: 100})
	s, err := scrollscene.New(host, scrollscene.Config{Element: el})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	events := collect(s)

	s.Destroy()
	host.ScrollTo(0, 600)
	host.ScrollTo(0, 1700)
	if len(*events) != 0 {
		t.Fatalf("events after destroy = %v", *events)
	}
}
