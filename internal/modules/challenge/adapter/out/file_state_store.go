package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/challenge/domain"
	challengeout "pomo/internal/modules/challenge/port/out"
)

// FileStateStore keeps challenge state in challenges.json. A missing or
// corrupt file loads as the default state.
type FileStateStore struct {
	path string
}

func NewFileStateStore(dataPath string) challengeout.StateStore {
	return &FileStateStore{path: filepath.Join(dataPath, "challenges.json")}
}

func (s *FileStateStore) Load(ctx context.Context) (domain.State, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.DefaultState(), nil
	}
	if err != nil {
		return domain.DefaultState(), fmt.Errorf("read challenge state: %w", err)
	}
	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.DefaultState(), nil
	}
	return state, nil
}

func (s *FileStateStore) Save(ctx context.Context, state domain.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode challenge state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write challenge state: %w", err)
	}
	return nil
}
