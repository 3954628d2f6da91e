package service

import (
	"context"
	"errors"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/domain"
	heartbeatout "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/port/out"
	"github.com/Kovah/obsidian-wakatime/internal/platform/clock"
	"github.com/Kovah/obsidian-wakatime/internal/platform/id"
)

const (
	statusIdle  = "WakaTime"
	statusError = "WakaTime: sending failed"

	noticeFailed = "WakaTime heartbeat could not be sent. Tracking continues; this heartbeat is lost."
)

// HeartbeatService transmits heartbeats fire-and-forget: one request per
// heartbeat, no retry, no cancellation of in-flight requests. Overlapping
// dispatches are independent; the last completion wins on the shared
// status display.
type HeartbeatService struct {
	clock    clock.Clock
	idGen    id.Generator
	client   heartbeatout.APIClient
	status   heartbeatout.StatusPresenter
	notifier heartbeatout.Notifier
	log      heartbeatout.DispatchLog
	logger   hclog.Logger

	mu      sync.Mutex
	failing bool
	wg      sync.WaitGroup
}

func NewHeartbeatService(
	clock clock.Clock,
	idGen id.Generator,
	client heartbeatout.APIClient,
	status heartbeatout.StatusPresenter,
	notifier heartbeatout.Notifier,
	log heartbeatout.DispatchLog,
	logger hclog.Logger,
) *HeartbeatService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HeartbeatService{
		clock:    clock,
		idGen:    idGen,
		client:   client,
		status:   status,
		notifier: notifier,
		log:      log,
		logger:   logger,
	}
}

// Dispatch fires one asynchronous send and returns immediately. The
// completion handler updates the status display, dedupes failure notices
// per consecutive failure streak, and records the outcome.
func (s *HeartbeatService) Dispatch(ctx context.Context, beat domain.Heartbeat, target domain.Target) {
	// Detach from the caller's context: a heartbeat in flight is never
	// cancelled.
	sendCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		code, err := s.client.Send(sendCtx, beat, target)
		s.complete(sendCtx, beat, code, err)
	}()
}

func (s *HeartbeatService) complete(ctx context.Context, beat domain.Heartbeat, code int, err error) {
	outcome := domain.Outcome{
		ID:         s.idGen.New(),
		At:         s.clock.Now(),
		Entity:     beat.Entity,
		Project:    beat.Project,
		StatusCode: code,
	}
	if err == nil {
		s.onSuccess()
	} else {
		statusErr := &domain.StatusError{}
		if !errors.As(err, &statusErr) {
			s.logger.Error("heartbeat transport failed", "entity", beat.Entity, "error", err)
		}
		outcome.Err = err.Error()
		s.onFailure()
	}
	if s.log != nil {
		if recordErr := s.log.Record(ctx, outcome); recordErr != nil {
			s.logger.Error("record dispatch outcome", "error", recordErr)
		}
	}
}

func (s *HeartbeatService) onSuccess() {
	s.mu.Lock()
	s.failing = false
	s.mu.Unlock()
	s.status.SetStatus(statusIdle)
}

func (s *HeartbeatService) onFailure() {
	s.mu.Lock()
	firstOfStreak := !s.failing
	s.failing = true
	s.mu.Unlock()

	s.status.SetStatus(statusError)
	if firstOfStreak {
		s.notifier.Notify(noticeFailed)
	}
}

// Wait blocks until every started dispatch has completed. Used on shutdown
// and by tests; callers on the hot path never wait.
func (s *HeartbeatService) Wait() {
	s.wg.Wait()
}
