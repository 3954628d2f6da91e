package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/domain"
	settingsout "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/out"
)

type YAMLSettingsStore struct {
	path string
}

func NewYAMLSettingsStore(path string) settingsout.Store {
	return &YAMLSettingsStore{path: path}
}

func (s *YAMLSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.Default()
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	// Unmarshal over the defaults so absent keys keep their default value.
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
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
