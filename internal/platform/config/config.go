package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataPath     string
	DBPath       string
	SettingsPath string
}

func New(dataPath string) (Config, error) {
	if dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataPath = filepath.Join(home, ".pomo")
	}
	return Config{
		DataPath:     dataPath,
		DBPath:       filepath.Join(dataPath, "pomo.db"),
		SettingsPath: filepath.Join(dataPath, "settings.yaml"),
	}, nil
}
