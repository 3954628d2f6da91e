package usecase

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	heartbeatin "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/in"
	heartbeatout "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/out"
	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/service"
	settingsin "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/in"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

type Interactor struct {
	svc       *service.HeartbeatService
	settings  settingsin.Usecase
	log       heartbeatout.DispatchLog
	vaultPath string
	vaultName string
}

func NewInteractor(svc *service.HeartbeatService, settings settingsin.Usecase, log heartbeatout.DispatchLog, vaultPath, vaultName string) heartbeatin.Usecase {
	return &Interactor{svc: svc, settings: settings, log: log, vaultPath: vaultPath, vaultName: vaultName}
}

func (i *Interactor) Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error) {
	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.SendOutput{}, err
	}
	if !settings.Enabled {
		return dto.SendOutput{}, apperrors.ErrTrackingDisabled
	}

	associations := make([]domain.Association, 0, len(settings.Associations))
	for _, a := range settings.Associations {
		associations = append(associations, domain.Association{Path: a.Path, Project: a.Project})
	}
	beat := domain.Build(domain.BuildInput{
		VaultPath:      i.vaultPath,
		VaultName:      i.vaultName,
		RelativePath:   input.RelativePath,
		IsWrite:        input.IsWrite,
		Line:           input.Line,
		Column:         input.Column,
		HasCursor:      input.HasCursor,
		At:             input.At,
		DefaultProject: settings.DefaultProject,
		Associations:   associations,
	})
	i.svc.Dispatch(ctx, beat, domain.Target{BaseURL: settings.APIURL, APIKey: settings.APIKey})

	out := dto.SendOutput{
		Entity:   beat.Entity,
		Project:  beat.Project,
		Category: beat.Category,
		IsWrite:  beat.IsWrite,
	}
	if beat.Language != nil {
		out.Language = *beat.Language
	}
	return out, nil
}

func (i *Interactor) Tail(ctx context.Context, limit int) ([]dto.OutcomeOutput, error) {
	if i.log == nil {
		return nil, nil
	}
	outcomes, err := i.log.Tail(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutcomeOutput, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, dto.OutcomeOutput{
			At:         o.At,
			Entity:     o.Entity,
			Project:    o.Project,
			StatusCode: o.StatusCode,
			Err:        o.Err,
			OK:         o.OK(),
		})
	}
	return out, nil
}
