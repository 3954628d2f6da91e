package in

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
)

type Usecase interface {
	// HandleEvent converts one raw input event into at most one heartbeat.
	HandleEvent(ctx context.Context, input dto.EventInput) (dto.EventOutput, error)
}
