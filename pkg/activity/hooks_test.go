package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksEnabled(t *testing.T) {
	if (Hooks{}).Enabled() {
		t.Fatal("empty hooks should be disabled")
	}
	if !(Hooks{&CaptureHook{}}).Enabled() {
		t.Fatal("non-empty hooks should be enabled")
	}
}

func TestHooksNotifyNormalizes(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	err := hooks.Notify(context.Background(), Event{
		Verb:       "  scene.created  ",
		ObjectType: " scene ",
		ObjectID:   " abc ",
		Metadata:   map[string]any{"axis": "vertical"},
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("events = %d", len(capture.Events))
	}
	got := capture.Events[0]
	if got.Verb != "scene.created" || got.ObjectType != "scene" || got.ObjectID != "abc" {
		t.Fatalf("normalized event = %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatal("missing timestamp should be filled")
	}
}

func TestHooksNotifySkipsIncompleteEvents(t *testing.T) {
	capture := &CaptureHook{}
	hooks := Hooks{capture}

	if err := hooks.Notify(context.Background(), Event{Verb: "scene.created"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatal("incomplete events must not reach hooks")
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	failA := errors.New("hook a failed")
	failB := errors.New("hook b failed")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return failA }),
		nil,
		capture,
		HookFunc(func(context.Context, Event) error { return failB }),
	}

	err := hooks.Notify(nil, Event{Verb: "v", ObjectType: "scene", ObjectID: "id"})
	if !errors.Is(err, failA) || !errors.Is(err, failB) {
		t.Fatalf("joined error = %v", err)
	}
	// A failing sibling must not stop delivery.
	if len(capture.Events) != 1 {
		t.Fatalf("capture events = %d", len(capture.Events))
	}
}

func TestNormalizeEventClonesMetadata(t *testing.T) {
	metadata := map[string]any{"k": "v"}
	normalized := NormalizeEvent(Event{Metadata: metadata})
	normalized.Metadata["k"] = "changed"
	if metadata["k"] != "v" {
		t.Fatal("normalization must clone metadata")
	}
}

func TestBuildSceneEvents(t *testing.T) {
	input := SceneEventInput{
		SceneID:  "abc",
		Changed:  []string{"trackStart", "offset"},
		Axis:     "vertical",
		Progress: 0.25,
	}

	created := BuildSceneCreatedEvent(input)
	if created.Verb != "scene.created" || created.ObjectType != "scene" || created.ObjectID != "abc" {
		t.Fatalf("created = %+v", created)
	}
	if _, ok := created.Metadata["progress"]; ok {
		t.Fatal("created events carry no progress")
	}

	modified := BuildSceneModifiedEvent(input)
	if modified.Verb != "scene.modified" {
		t.Fatalf("modified verb = %q", modified.Verb)
	}
	changed, ok := modified.Metadata["changed"].([]string)
	if !ok || len(changed) != 2 || changed[0] != "trackStart" {
		t.Fatalf("changed metadata = %v", modified.Metadata["changed"])
	}
	if modified.Metadata["progress"] != 0.25 || modified.Metadata["axis"] != "vertical" {
		t.Fatalf("metadata = %v", modified.Metadata)
	}

	destroyed := BuildSceneDestroyedEvent(SceneEventInput{})
	if destroyed.Verb != "scene.destroyed" || destroyed.ObjectID != "scene" {
		t.Fatalf("destroyed = %+v", destroyed)
	}
}

func TestEmitter(t *testing.T) {
	capture := &CaptureHook{}

	disabled := NewEmitter(Hooks{capture}, Config{})
	if disabled.Enabled() {
		t.Fatal("emitter should honour Enabled=false")
	}
	if err := disabled.Emit(context.Background(), Event{Verb: "v", ObjectType: "scene", ObjectID: "id"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatal("disabled emitter must not deliver")
	}

	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true})
	event := Event{
		Verb:       "scene.created",
		ObjectType: "scene",
		ObjectID:   "id",
		OccurredAt: time.Now(),
	}
	if err := emitter.Emit(context.Background(), event); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("events = %d", len(capture.Events))
	}
	if capture.Events[0].Channel != "scrollscene" {
		t.Fatalf("channel = %q, want default", capture.Events[0].Channel)
	}

	custom := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "ui"})
	if err := custom.Emit(context.Background(), event); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if capture.Events[1].Channel != "ui" {
		t.Fatalf("channel = %q, want ui", capture.Events[1].Channel)
	}
}
