package out

import (
	"context"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
)

// APIClient transmits exactly one heartbeat and reports the HTTP status
// code. A non-success status is returned as *domain.StatusError; an error
// without a status code is a transport failure.
type APIClient interface {
	Send(ctx context.Context, beat domain.Heartbeat, target domain.Target) (int, error)
}

// StatusPresenter owns the status-bar-like text display. Completions apply
// last-write-wins; overlapping dispatches are not coordinated.
type StatusPresenter interface {
	SetStatus(text string)
}

// Notifier raises a transient user-facing notice.
type Notifier interface {
	Notify(message string)
}

// DispatchLog records dispatch outcomes for diagnostics only.
type DispatchLog interface {
	Record(ctx context.Context, outcome domain.Outcome) error
	Tail(ctx context.Context, limit int) ([]domain.Outcome, error)
}
