package out

import (
	"context"
	"errors"

	heartbeatdto "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	heartbeatin "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/in"
	trackerdto "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
	trackerout "github.com/Kovah/obsidian-wakatime/internal/modules/tracker/port/out"
	apperrors "github.com/Kovah/obsidian-wakatime/internal/platform/errors"
)

// HeartbeatSinkAdapter bridges emitted monitor events into the dispatcher
// use-case. Tracking being switched off between decision and dispatch is
// a no-op, not an error.
type HeartbeatSinkAdapter struct {
	heartbeat heartbeatin.Usecase
}

func NewHeartbeatSinkAdapter(heartbeat heartbeatin.Usecase) trackerout.HeartbeatSink {
	return &HeartbeatSinkAdapter{heartbeat: heartbeat}
}

func (a *HeartbeatSinkAdapter) Emit(ctx context.Context, input trackerdto.EmitInput) error {
	_, err := a.heartbeat.Send(ctx, heartbeatdto.SendInput{
		RelativePath: input.Path,
		IsWrite:      input.IsWrite,
		Line:         input.Line,
		Column:       input.Column,
		HasCursor:    input.HasCursor,
		At:           input.At,
	})
	if errors.Is(err, apperrors.ErrTrackingDisabled) {
		return nil
	}
	return err
}
