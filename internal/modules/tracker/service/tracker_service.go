package service

import (
	"sync"

	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/domain"
)

// TrackerService owns the debounce state. Observe is the only mutation
// point and advances the state exclusively when an event qualifies.
type TrackerService struct {
	mu   sync.Mutex
	last domain.Debounce
}

func NewTrackerService() *TrackerService {
	return &TrackerService{}
}

// Observe applies the debounce rule to one event and reports whether a
// heartbeat should be emitted for it.
func (s *TrackerService) Observe(e domain.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.last.ShouldEmit(e) {
		return false
	}
	s.last = s.last.Advance(e)
	return true
}
