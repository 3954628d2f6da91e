package config

import (
	"fmt"
	"path/filepath"
)

// Config carries the paths derived from the vault root. All tracker state
// lives under <vault>/.obsidian-wakatime so a vault stays self-contained.
type Config struct {
	VaultPath    string
	StatePath    string
	SettingsPath string
	DBPath       string
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	abs, err := filepath.Abs(vaultPath)
	if err != nil {
		return Config{}, fmt.Errorf("resolve vault path: %w", err)
	}
	state := filepath.Join(abs, ".obsidian-wakatime")
	return Config{
		VaultPath:    abs,
		StatePath:    state,
		SettingsPath: filepath.Join(state, "settings.yaml"),
		DBPath:       filepath.Join(state, "dispatch.db"),
	}, nil
}

// VaultName is the workspace identity used as the fallback project name.
func (c Config) VaultName() string {
	return filepath.Base(c.VaultPath)
}
