package domain_test

import (
	"testing"
	"time"

	"github.com/Kovah/obsidian-wakatime/internal/modules/tracker/domain"
)

func TestDebounceWindowBoundary(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	state := domain.Debounce{LastPath: "a.md", LastBeatAt: base}

	// exactly at the window edge is still debounced; it must elapse
	atEdge := domain.Event{Kind: domain.EventKeyboard, Path: "a.md", At: base.Add(domain.MinHeartbeatInterval)}
	if state.ShouldEmit(atEdge) {
		t.Fatalf("event exactly at the window edge must be debounced")
	}
	past := domain.Event{Kind: domain.EventKeyboard, Path: "a.md", At: base.Add(domain.MinHeartbeatInterval + time.Millisecond)}
	if !state.ShouldEmit(past) {
		t.Fatalf("event past the window must emit")
	}
}

func TestWritesAndFileSwitchesBypassTheWindow(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	state := domain.Debounce{LastPath: "a.md", LastBeatAt: base}

	save := domain.Event{Kind: domain.EventSave, Path: "a.md", At: base.Add(time.Second)}
	if !state.ShouldEmit(save) {
		t.Fatalf("save must always emit")
	}
	otherFile := domain.Event{Kind: domain.EventPointer, Path: "b.md", At: base.Add(time.Second)}
	if !state.ShouldEmit(otherFile) {
		t.Fatalf("activity on a different file must emit")
	}
}

func TestAdvanceRecordsPathAndTime(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	next := domain.Debounce{}.Advance(domain.Event{Kind: domain.EventKeyboard, Path: "a.md", At: at})
	if next.LastPath != "a.md" || !next.LastBeatAt.Equal(at) {
		t.Fatalf("advance wrong: %+v", next)
	}
}
