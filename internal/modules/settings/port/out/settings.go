package out

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/domain"
)

// Store persists the settings object. Load merges the stored state over
// hardcoded defaults and never fails on a missing file.
type Store interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
