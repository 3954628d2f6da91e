package service

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/domain"
	settingsout "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/out"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

type SettingsService struct {
	store settingsout.Store
}

func NewSettingsService(store settingsout.Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Load(ctx context.Context) (domain.Settings, error) {
	return s.store.Load(ctx)
}

// Apply merges a field update into the current settings and persists the
// result. Clearing the API key while tracking is on forces tracking off.
func (s *SettingsService) Apply(ctx context.Context, current domain.Settings, apiKey, apiURL, defaultProject string, ignoreList, associations []string) (domain.Settings, error) {
	normalized, err := domain.NormalizeAPIURL(apiURL)
	if err != nil {
		return domain.Settings{}, err
	}
	next := current
	next.APIKey = apiKey
	next.APIURL = normalized
	next.DefaultProject = defaultProject
	next.IgnoreList = ignoreList
	next.ProjectAssociations = associations
	if next.APIKey == "" {
		next.Enabled = false
	}
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	return next, nil
}

// SetEnabled flips the tracking toggle. Enabling without an API key is
// rejected and the toggle stays off.
func (s *SettingsService) SetEnabled(ctx context.Context, current domain.Settings, enabled bool) (domain.Settings, error) {
	if enabled && current.APIKey == "" {
		return domain.Settings{}, apperrors.ErrAPIKeyRequired
	}
	next := current
	next.Enabled = enabled
	if err := s.store.Save(ctx, next); err != nil {
		return domain.Settings{}, err
	}
	return next, nil
}
