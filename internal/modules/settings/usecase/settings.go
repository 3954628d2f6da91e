package usecase

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/domain"
	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	settingsin "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/in"
	"github.com/Kovah/obsidian-wakatime/internal/modules/settings/service"
)

type Interactor struct {
	svc *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(settings), nil
}

func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) (dto.SettingsOutput, error) {
	current, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	next, err := i.svc.Apply(ctx, current,
		input.APIKey,
		input.APIURL,
		input.DefaultProject,
		domain.ParseLines(input.IgnoreText),
		domain.ParseLines(input.AssociationsText),
	)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(next), nil
}

func (i *Interactor) SetEnabled(ctx context.Context, input dto.SetEnabledInput) (dto.SettingsOutput, error) {
	current, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	next, err := i.svc.SetEnabled(ctx, current, input.Enabled)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toOutput(next), nil
}

func toOutput(settings domain.Settings) dto.SettingsOutput {
	assocs := settings.Associations()
	out := dto.SettingsOutput{
		Enabled:          settings.Enabled,
		APIKey:           settings.APIKey,
		APIURL:           settings.APIURL,
		DefaultProject:   settings.DefaultProject,
		IgnoreList:       settings.IgnoreList,
		Associations:     make([]dto.Association, 0, len(assocs)),
		IgnoreText:       domain.JoinLines(settings.IgnoreList),
		AssociationsText: domain.JoinLines(settings.ProjectAssociations),
	}
	for _, a := range assocs {
		out.Associations = append(out.Associations, dto.Association{Path: a.Path, Project: a.Project})
	}
	return out
}
