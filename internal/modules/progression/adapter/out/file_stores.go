package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomo/internal/modules/progression/domain"
	progressionout "pomo/internal/modules/progression/port/out"
)

// FileProfileStore keeps the profile as a JSON document. Missing or corrupt
// files load as a fresh default profile; the engine never sees a decode
// error.
type FileProfileStore struct {
	path string
}

func NewFileProfileStore(dataPath string) progressionout.ProfileStore {
	return &FileProfileStore{path: filepath.Join(dataPath, "profile.json")}
}

func (s *FileProfileStore) Load(_ context.Context) (domain.Profile, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultProfile(), nil
		}
		return domain.DefaultProfile(), fmt.Errorf("read profile: %w", err)
	}
	profile := domain.DefaultProfile()
	if err := json.Unmarshal(payload, &profile); err != nil {
		return domain.DefaultProfile(), nil
	}
	return profile, nil
}

func (s *FileProfileStore) Save(_ context.Context, profile domain.Profile) error {
	return writeJSON(s.path, profile)
}

type FileInventoryStore struct {
	path string
}

func NewFileInventoryStore(dataPath string) progressionout.InventoryStore {
	return &FileInventoryStore{path: filepath.Join(dataPath, "inventory.json")}
}

func (s *FileInventoryStore) Load(_ context.Context) (domain.Inventory, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultInventory(), nil
		}
		return domain.DefaultInventory(), fmt.Errorf("read inventory: %w", err)
	}
	inventory := domain.DefaultInventory()
	if err := json.Unmarshal(payload, &inventory); err != nil {
		return domain.DefaultInventory(), nil
	}
	return inventory, nil
}

func (s *FileInventoryStore) Save(_ context.Context, inventory domain.Inventory) error {
	return writeJSON(s.path, inventory)
}

// YAMLSettingsStore keeps user settings in a hand-editable settings.yaml.
type YAMLSettingsStore struct {
	path string
}

func NewYAMLSettingsStore(path string) progressionout.SettingsStore {
	return &YAMLSettingsStore{path: path}
}

func (s *YAMLSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultSettings(), nil
		}
		return domain.DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	settings := domain.DefaultSettings()
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

func (s *YAMLSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
