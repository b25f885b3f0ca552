package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
)

// FileActiveStore keeps the in-flight run in active.json so a crashed
// process can recover or discard it on next start.
type FileActiveStore struct {
	path string
}

func NewFileActiveStore(dataPath string) timerout.ActiveStore {
	return &FileActiveStore{path: filepath.Join(dataPath, "active.json")}
}

func (s *FileActiveStore) Save(ctx context.Context, active domain.Active) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return fmt.Errorf("encode active session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	return nil
}

func (s *FileActiveStore) Load(ctx context.Context) (*domain.Active, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read active session: %w", err)
	}
	var active domain.Active
	if err := json.Unmarshal(raw, &active); err != nil {
		// corrupt file reads as no active session
		return nil, nil
	}
	if active.SessionID == "" {
		return nil, nil
	}
	return &active, nil
}

func (s *FileActiveStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
