package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pomo/internal/modules/progression/domain"
)

func TestProfileStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := NewFileProfileStore(dir)

	profile := domain.DefaultProfile()
	profile.Level = 7
	profile.CurrentStreak = 4
	profile.AchievementIDs = []string{"first_session"}
	if err := store.Save(context.Background(), profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if loaded.Level != 7 || loaded.CurrentStreak != 4 {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
	if !loaded.HasAchievement("first_session") {
		t.Fatalf("achievement ids lost in round trip")
	}
}

func TestProfileStoreDegradesCorruptFileToDefault(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store := NewFileProfileStore(dir)
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt file must not error: %v", err)
	}
	if loaded.Level != 1 || loaded.TotalSessions != 0 {
		t.Fatalf("expected default profile, got %+v", loaded)
	}
}

func TestProfileStoreMissingFileIsDefault(t *testing.T) {
	t.Parallel()
	store := NewFileProfileStore(t.TempDir())
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if loaded.Level != 1 {
		t.Fatalf("expected default profile, got %+v", loaded)
	}
}

func TestSettingsStoreYAMLRoundTripAndCorruption(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := NewYAMLSettingsStore(path)

	settings := domain.DefaultSettings()
	settings.DailyGoal = 12
	settings.AutoBreak = true
	if err := store.Save(context.Background(), settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if loaded.DailyGoal != 12 || !loaded.AutoBreak {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}

	if err := os.WriteFile(path, []byte(":\t}bad"), 0o644); err != nil {
		t.Fatalf("seed corrupt settings: %v", err)
	}
	loaded, err = store.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt settings must not error: %v", err)
	}
	if loaded.DailyGoal != domain.DefaultSettings().DailyGoal {
		t.Fatalf("expected defaults after corruption, got %+v", loaded)
	}
}
