package domain

import "time"

// MinHeartbeatInterval is the debounce window: repeated activity on the
// same file without a write emits at most one heartbeat per window.
const MinHeartbeatInterval = 120000 * time.Millisecond

type EventKind string

const (
	EventPointer  EventKind = "pointer"
	EventKeyboard EventKind = "keyboard"
	EventSave     EventKind = "save"
)

// Event is one raw input observation from the host editor, already bound
// to the active document view. Path is vault-relative.
type Event struct {
	Kind      EventKind
	Path      string
	Line      int
	Column    int
	HasCursor bool
	At        time.Time
}

// IsWrite reports write activity as opposed to view activity.
func (e Event) IsWrite() bool {
	return e.Kind == EventSave
}

// Debounce is the two-field monitor state: the file and time of the last
// emitted heartbeat. It advances only when a heartbeat is actually sent.
type Debounce struct {
	LastPath   string
	LastBeatAt time.Time
}

// ShouldEmit decides whether an event turns into a heartbeat: writes
// always do, and so does any activity on a different file or after the
// debounce window has elapsed.
func (d Debounce) ShouldEmit(e Event) bool {
	if e.IsWrite() {
		return true
	}
	if e.Path != d.LastPath {
		return true
	}
	return e.At.Sub(d.LastBeatAt) > MinHeartbeatInterval
}

// Advance records an emission.
func (d Debounce) Advance(e Event) Debounce {
	return Debounce{LastPath: e.Path, LastBeatAt: e.At}
}
