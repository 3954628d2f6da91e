package in

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.SettingsOutput, error)
	Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error)
	SetEnabled(ctx context.Context, input dto.SetEnabledInput) (dto.SettingsOutput, error)
}
