package usecase

import (
	"context"
	"fmt"
	"strings"

	settingsin "github.com/Kovah/obsidian-wakatime/internal/modules/settings/port/in"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/domain"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	trackerin "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/port/in"
	trackerout "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/port/out"
	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/service"
	"github.com/Kovah/obsidian-wakatime/internal/platform/clock"
)

type Interactor struct {
	svc      *service.TrackerService
	settings settingsin.Usecase
	sink     trackerout.HeartbeatSink
	clock    clock.Clock
}

func NewInteractor(svc *service.TrackerService, settings settingsin.Usecase, sink trackerout.HeartbeatSink, clk clock.Clock) trackerin.Usecase {
	return &Interactor{svc: svc, settings: settings, sink: sink, clock: clk}
}

func (i *Interactor) HandleEvent(ctx context.Context, input dto.EventInput) (dto.EventOutput, error) {
	event, err := toEvent(input, i.clock)
	if err != nil {
		return dto.EventOutput{}, err
	}

	settings, err := i.settings.Get(ctx)
	if err != nil {
		return dto.EventOutput{}, err
	}
	if !settings.Enabled {
		return dto.EventOutput{Reason: dto.ReasonDisabled}, nil
	}
	if event.Path == "" {
		return dto.EventOutput{Reason: dto.ReasonNoFile}, nil
	}
	if ignored(settings.IgnoreList, event.Path) {
		return dto.EventOutput{Reason: dto.ReasonIgnored}, nil
	}
	if !i.svc.Observe(event) {
		return dto.EventOutput{Reason: dto.ReasonDebounced}, nil
	}

	if err := i.sink.Emit(ctx, dto.EmitInput{
		Path:      event.Path,
		IsWrite:   event.IsWrite(),
		Line:      event.Line,
		Column:    event.Column,
		HasCursor: event.HasCursor,
		At:        event.At,
	}); err != nil {
		return dto.EventOutput{}, err
	}
	return dto.EventOutput{Emitted: true}, nil
}

func toEvent(input dto.EventInput, clk clock.Clock) (domain.Event, error) {
	kind := domain.EventKind(input.Kind)
	switch kind {
	case domain.EventPointer, domain.EventKeyboard, domain.EventSave:
	default:
		return domain.Event{}, fmt.Errorf("unknown event kind: %s", input.Kind)
	}
	return domain.Event{
		Kind:      kind,
		Path:      input.Path,
		Line:      input.Line,
		Column:    input.Column,
		HasCursor: input.HasCursor,
		At:        clk.Now(),
	}, nil
}

// ignored applies bidirectional substring containment: an ignore entry
// inside the path, or the path inside the ignore entry.
func ignored(ignoreList []string, path string) bool {
	for _, entry := range ignoreList {
		if entry == "" {
			continue
		}
		if strings.Contains(path, entry) || strings.Contains(entry, path) {
			return true
		}
	}
	return false
}
