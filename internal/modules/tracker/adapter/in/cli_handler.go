package in

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	trackerin "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) HandleEvent(ctx context.Context, input dto.EventInput) (dto.EventOutput, error) {
	return h.usecase.HandleEvent(ctx, input)
}
