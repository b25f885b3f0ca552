package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	pluginDir := filepath.Join(dir, "plugins", name)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMissingDir(t *testing.T) {
	t.Parallel()

	store := NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("manifests = %v, want empty", manifests)
	}
}

func TestLoadResolvesRelativeBinary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "beeper", `{"name":"beeper","version":"1.0.0","binary":"beeper-bin","enabled":true,"events":["level_up"]}`)

	store := NewFileManifestStore(dir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("loaded %d manifests, want 1", len(manifests))
	}
	want := filepath.Join(dir, "plugins", "beeper", "beeper-bin")
	if manifests[0].Binary != want {
		t.Errorf("Binary = %q, want %q", manifests[0].Binary, want)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeManifest(t, dir, "odd", `{"name":"odd","version":"1.0.0","binary":"odd","sneaky":true}`)

	store := NewFileManifestStore(dir)
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestLoadSkipsDirsWithoutManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "plugins", "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, dir, "real", `{"name":"real","version":"1.0.0","binary":"/usr/bin/real","enabled":true,"events":[]}`)

	store := NewFileManifestStore(dir)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(manifests) != 1 || manifests[0].Name != "real" {
		t.Fatalf("manifests = %+v", manifests)
	}
}
