// Package profiles defines persistence-facing contracts for loading and
// saving named scene-configuration profiles, plus a resolver that turns
// persisted profiles into configuration layers for scene construction.
//
// Stores persist only the data-expressible fields of a configuration;
// element and container references are runtime values the host attaches
// after resolution. The core scrollscene package stays persistence-agnostic:
// all storage logic lives behind Store implementations supplied by
// consumers.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	scrollscene "github.com/goliatone/go-scrollscene"
)

// ErrETagMismatch is returned by Mutate when the caller's ETag no longer
// matches the stored snapshot.
var ErrETagMismatch = errors.New("profiles: etag mismatch")

// Ref identifies one persisted profile.
type Ref struct {
	// Namespace groups profiles, e.g. per application or per surface.
	// Empty means the "profiles" namespace.
	Namespace string
	// Name is the profile name, unique within its namespace.
	Name string
}

// Identifier returns a deterministic storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.Name == "" {
		return "", fmt.Errorf("profiles: profile name is required")
	}
	namespace := r.Namespace
	if namespace == "" {
		namespace = "profiles"
	}
	return fmt.Sprintf("%s/%s", namespace, r.Name), nil
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one profile snapshot per reference.
type Store interface {
	Load(ctx context.Context, ref Ref) (snapshot scrollscene.Config, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot scrollscene.Config, meta Meta) (Meta, error)
}

// Mutator adjusts a loaded snapshot in place.
type Mutator func(*scrollscene.Config) error

// Resolver loads named profiles from a Store and merges them into
// configuration layers. Later names take precedence over earlier ones.
type Resolver struct {
	Store     Store
	Namespace string
}

// Layers loads the named profiles and returns them as scene profile layers,
// weakest first. Missing profiles are skipped; the caller decides whether an
// empty result is an error.
func (r Resolver) Layers(ctx context.Context, names ...string) ([]scrollscene.Layer, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("profiles: store is required")
	}
	layers := make([]scrollscene.Layer, 0, len(names))
	for i, name := range names {
		snapshot, _, ok, err := r.load(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		scope := scrollscene.NewScope(name, scrollscene.ScopePriorityProfile+i,
			scrollscene.WithScopeLabel("Profile "+name))
		layers = append(layers, scrollscene.NewLayer(scope, snapshot))
	}
	return layers, nil
}

// Resolve merges the named profiles into one partial configuration.
func (r Resolver) Resolve(ctx context.Context, names ...string) (scrollscene.Config, error) {
	layers, err := r.Layers(ctx, names...)
	if err != nil {
		return scrollscene.Config{}, err
	}
	if len(layers) == 0 {
		return scrollscene.Config{}, fmt.Errorf("profiles: no profiles found")
	}
	stack, err := scrollscene.NewStack(layers...)
	if err != nil {
		return scrollscene.Config{}, fmt.Errorf("profiles: stack: %w", err)
	}
	return stack.Merge(), nil
}

// ResolveWithDefaults merges the named profiles on top of defaults, which
// participate as the weakest layer.
func (r Resolver) ResolveWithDefaults(ctx context.Context, defaults scrollscene.Config, names ...string) (scrollscene.Config, error) {
	for _, name := range names {
		if name == "defaults" {
			return scrollscene.Config{}, fmt.Errorf("profiles: profile name %q is reserved", "defaults")
		}
	}
	layers, err := r.Layers(ctx, names...)
	if err != nil {
		return scrollscene.Config{}, err
	}
	all := make([]scrollscene.Layer, 0, len(layers)+1)
	all = append(all, scrollscene.NewLayer(
		scrollscene.NewScope("defaults", scrollscene.ScopePriorityBuiltin,
			scrollscene.WithScopeLabel("Defaults")),
		defaults,
	))
	all = append(all, layers...)
	stack, err := scrollscene.NewStack(all...)
	if err != nil {
		return scrollscene.Config{}, fmt.Errorf("profiles: stack: %w", err)
	}
	return stack.Merge(), nil
}

// Mutate loads one profile, applies fn, validates the result, and saves it.
// A non-empty meta.ETag enforces optimistic concurrency against the stored
// snapshot.
func (r Resolver) Mutate(ctx context.Context, ref Ref, meta Meta, fn Mutator) (scrollscene.Config, Meta, error) {
	if r.Store == nil {
		return scrollscene.Config{}, Meta{}, fmt.Errorf("profiles: store is required")
	}
	if fn == nil {
		return scrollscene.Config{}, Meta{}, fmt.Errorf("profiles: mutator is required")
	}
	if ref.Namespace == "" {
		ref.Namespace = r.Namespace
	}
	if _, err := ref.Identifier(); err != nil {
		return scrollscene.Config{}, Meta{}, err
	}

	snapshot, loadedMeta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return scrollscene.Config{}, Meta{}, fmt.Errorf("profiles: load %q: %w", ref.Name, err)
	}
	if !ok {
		snapshot = scrollscene.Config{}
		loadedMeta = Meta{}
	}

	if meta.ETag != "" && loadedMeta.ETag != "" && meta.ETag != loadedMeta.ETag {
		return scrollscene.Config{}, loadedMeta,
			fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, loadedMeta.ETag)
	}

	if err := fn(&snapshot); err != nil {
		return scrollscene.Config{}, loadedMeta, err
	}
	if err := scrollscene.Validate(snapshot); err != nil {
		return scrollscene.Config{}, loadedMeta, err
	}

	savedMeta, err := r.Store.Save(ctx, ref, snapshot, mergeMeta(loadedMeta, meta))
	if err != nil {
		return scrollscene.Config{}, loadedMeta, fmt.Errorf("profiles: save %q: %w", ref.Name, err)
	}
	return snapshot, savedMeta, nil
}

func (r Resolver) load(ctx context.Context, name string) (scrollscene.Config, Meta, bool, error) {
	ref := Ref{Namespace: r.Namespace, Name: name}
	snapshot, meta, ok, err := r.Store.Load(ctx, ref)
	if err != nil {
		return scrollscene.Config{}, Meta{}, false, fmt.Errorf("profiles: load %q: %w", name, err)
	}
	return snapshot, meta, ok, nil
}

func mergeMeta(base, override Meta) Meta {
	out := base
	if override.SnapshotID != "" {
		out.SnapshotID = override.SnapshotID
	}
	if override.ETag != "" {
		out.ETag = override.ETag
	}
	if !override.UpdatedAt.IsZero() {
		out.UpdatedAt = override.UpdatedAt
	}
	if override.Extra != nil {
		out.Extra = override.Extra
	}
	return out
}
