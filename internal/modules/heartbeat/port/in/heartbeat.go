package in

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
)

type Usecase interface {
	// Send builds the heartbeat for one activity observation and fires a
	// single asynchronous request. It returns once dispatch has started.
	Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error)
	// Tail returns the most recent dispatch outcomes, newest first.
	Tail(ctx context.Context, limit int) ([]dto.OutcomeOutput, error)
}
