package profiles

import (
	"context"
	"errors"
	"testing"

	scrollscene "github.com/goliatone/go-scrollscene"
)

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		ref     Ref
		want    string
		wantErr bool
	}{
		{"defaultNamespace", Ref{Name: "hero"}, "profiles/hero", false},
		{"explicitNamespace", Ref{Namespace: "storefront", Name: "hero"}, "storefront/hero", false},
		{"missingName", Ref{Namespace: "storefront"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Identifier() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Identifier: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	ref := Ref{Name: "hero"}
	snapshot := scrollscene.Config{TrackStart: scrollscene.Float(0.8)}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("empty store load = ok=%v err=%v", ok, err)
	}

	meta, err := store.Save(ctx, ref, snapshot, Meta{ETag: "v1", Extra: map[string]string{"by": "test"}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.ETag != "v1" {
		t.Fatalf("saved meta = %+v", meta)
	}

	loaded, loadedMeta, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if loaded.TrackStart == nil || *loaded.TrackStart != 0.8 {
		t.Fatalf("loaded snapshot = %+v", loaded)
	}

	// Metadata is cloned on both paths.
	loadedMeta.Extra["by"] = "mutated"
	_, again, _, _ := store.Load(ctx, ref)
	if again.Extra["by"] != "test" {
		t.Fatal("store must not share metadata maps with callers")
	}
}

func TestResolverLayersPrecedence(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seed := func(name string, cfg scrollscene.Config) {
		t.Helper()
		if _, err := store.Save(ctx, Ref{Name: name}, cfg, Meta{}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	seed("base", scrollscene.Config{
		TrackStart: scrollscene.Float(0.9),
		TrackEnd:   scrollscene.Float(0.1),
	})
	seed("hero", scrollscene.Config{
		TrackStart: scrollscene.Float(0.7),
	})

	resolver := Resolver{Store: store}
	merged, err := resolver.Resolve(ctx, "base", "hero", "missing")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// Later names win; missing profiles are skipped.
	if merged.TrackStart == nil || *merged.TrackStart != 0.7 {
		t.Fatalf("trackStart = %v, want hero's 0.7", merged.TrackStart)
	}
	if merged.TrackEnd == nil || *merged.TrackEnd != 0.1 {
		t.Fatalf("trackEnd = %v, want base's 0.1", merged.TrackEnd)
	}

	if _, err := resolver.Resolve(ctx, "missing"); err == nil {
		t.Fatal("resolving only missing profiles must fail")
	}
}

func TestResolveWithDefaults(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	if _, err := store.Save(ctx, Ref{Name: "hero"}, scrollscene.Config{
		TrackStart: scrollscene.Float(0.7),
	}, Meta{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolver := Resolver{Store: store}
	merged, err := resolver.ResolveWithDefaults(ctx, scrollscene.Config{
		TrackStart: scrollscene.Float(1),
		TrackEnd:   scrollscene.Float(0),
	}, "hero")
	if err != nil {
		t.Fatalf("ResolveWithDefaults: %v", err)
	}
	if *merged.TrackStart != 0.7 {
		t.Fatalf("trackStart = %v, want stored profile to win", *merged.TrackStart)
	}
	if *merged.TrackEnd != 0 {
		t.Fatalf("trackEnd = %v, want defaults fill", *merged.TrackEnd)
	}

	if _, err := resolver.ResolveWithDefaults(ctx, scrollscene.Config{}, "defaults"); err == nil {
		t.Fatal("the defaults scope name is reserved")
	}
}

func TestMutate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	resolver := Resolver{Store: store}
	ref := Ref{Name: "hero"}

	// First mutation creates the profile.
	snapshot, meta, err := resolver.Mutate(ctx, ref, Meta{ETag: "v1"}, func(cfg *scrollscene.Config) error {
		cfg.TrackStart = scrollscene.Float(0.8)
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if *snapshot.TrackStart != 0.8 || meta.ETag != "v1" {
		t.Fatalf("snapshot = %+v meta = %+v", snapshot, meta)
	}

	// Stale ETag is rejected.
	_, _, err = resolver.Mutate(ctx, ref, Meta{ETag: "stale"}, func(cfg *scrollscene.Config) error {
		cfg.TrackStart = scrollscene.Float(0.5)
		return nil
	})
	if !errors.Is(err, ErrETagMismatch) {
		t.Fatalf("stale mutate = %v, want ErrETagMismatch", err)
	}

	// Malformed results never reach storage.
	_, _, err = resolver.Mutate(ctx, ref, Meta{ETag: "v1"}, func(cfg *scrollscene.Config) error {
		cfg.TrackStart = scrollscene.Float(2)
		return nil
	})
	if !scrollscene.IsValidation(err) {
		t.Fatalf("invalid mutate = %v, want validation error", err)
	}
	stored, _, _, _ := store.Load(ctx, ref)
	if *stored.TrackStart != 0.8 {
		t.Fatalf("stored trackStart = %v, want unchanged", *stored.TrackStart)
	}
}

func TestMutateRequiresInputs(t *testing.T) {
	resolver := Resolver{}
	if _, _, err := resolver.Mutate(context.Background(), Ref{Name: "x"}, Meta{}, nil); err == nil {
		t.Fatal("expected error without a store")
	}
	resolver.Store = NewMemoryStore()
	if _, _, err := resolver.Mutate(context.Background(), Ref{Name: "x"}, Meta{}, nil); err == nil {
		t.Fatal("expected error without a mutator")
	}
	if _, _, err := resolver.Mutate(context.Background(), Ref{}, Meta{}, func(*scrollscene.Config) error { return nil }); err == nil {
		t.Fatal("expected error without a profile name")
	}
}
