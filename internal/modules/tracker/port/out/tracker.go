package out

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/dto"
)

// HeartbeatSink receives the activity observations the monitor decided to
// emit. Delivery is fire-and-forget on the sink side.
type HeartbeatSink interface {
	Emit(ctx context.Context, input dto.EmitInput) error
}
