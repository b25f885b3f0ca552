package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"
)

// FileManifestStore reads one plugin.json per directory under
// <data>/plugins/. Relative binary paths resolve against the plugin's
// own directory.
type FileManifestStore struct {
	basePath string
}

func NewFileManifestStore(dataPath string) notifyout.ManifestStore {
	return &FileManifestStore{basePath: filepath.Join(dataPath, "plugins")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	entries, err := os.ReadDir(s.basePath)
	if os.IsNotExist(err) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugins dir: %w", err)
	}

	var manifests []domain.Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.basePath, entry.Name())
		raw, err := os.ReadFile(filepath.Join(dir, "plugin.json"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", entry.Name(), err)
		}
		var manifest domain.Manifest
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("decode manifest %s: %w", entry.Name(), err)
		}
		if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
			manifest.Binary = filepath.Clean(filepath.Join(dir, manifest.Binary))
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}
