package out

import "sync"

// MemoryStatus holds the status-bar text and the latest undelivered notice
// for hosts that poll over the bridge. Writes are last-write-wins.
type MemoryStatus struct {
	mu     sync.Mutex
	status string
	notice string
}

func NewMemoryStatus() *MemoryStatus {
	return &MemoryStatus{status: "WakaTime"}
}

func (m *MemoryStatus) SetStatus(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = text
}

func (m *MemoryStatus) Notify(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notice = message
}

func (m *MemoryStatus) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// TakeNotice returns the pending notice and clears it, so a notice is
// surfaced to the user exactly once.
func (m *MemoryStatus) TakeNotice() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	notice := m.notice
	m.notice = ""
	return notice
}
