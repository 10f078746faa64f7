package activity

import (
	"strings"
	"time"
)

// SceneEventInput describes the common fields for scene lifecycle events.
type SceneEventInput struct {
	SceneID    string
	Channel    string
	Changed    []string
	Axis       string
	Progress   float64
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildSceneCreatedEvent constructs a normalized activity event for scene
// construction.
func BuildSceneCreatedEvent(input SceneEventInput) Event {
	return buildSceneEvent("scene.created", input)
}

// BuildSceneModifiedEvent constructs a normalized activity event for an
// accepted configuration change.
func BuildSceneModifiedEvent(input SceneEventInput) Event {
	return buildSceneEvent("scene.modified", input)
}

// BuildSceneDestroyedEvent constructs a normalized activity event for scene
// teardown.
func BuildSceneDestroyedEvent(input SceneEventInput) Event {
	return buildSceneEvent("scene.destroyed", input)
}

func buildSceneEvent(verb string, input SceneEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if len(input.Changed) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["changed"] = append([]string{}, input.Changed...)
	}
	if input.Axis != "" {
		metadata = ensureMetadata(metadata)
		metadata["axis"] = input.Axis
	}
	if verb != "scene.created" {
		metadata = ensureMetadata(metadata)
		metadata["progress"] = input.Progress
	}

	objectID := strings.TrimSpace(input.SceneID)
	if objectID == "" {
		objectID = "scene"
	}

	return Event{
		Verb:       verb,
		ObjectType: "scene",
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
