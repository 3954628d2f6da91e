package in

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	heartbeatin "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/in"
)

type CLIHandler struct {
	usecase heartbeatin.Usecase
}

func NewCLIHandler(usecase heartbeatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, input dto.SendInput) (dto.SendOutput, error) {
	return h.usecase.Send(ctx, input)
}

func (h CLIHandler) Tail(ctx context.Context, limit int) ([]dto.OutcomeOutput, error) {
	return h.usecase.Tail(ctx, limit)
}
