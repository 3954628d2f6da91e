package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	heartbeatdto "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	"github.com/Kovah/obsidian-wakatime/internal/ui/theme"
)

// Port is the minimal interface this view needs from the heartbeat
// use-case.
type Port interface {
	Tail(ctx context.Context, limit int) ([]heartbeatdto.OutcomeOutput, error)
}

// OutcomesLoadedMsg is sent when the dispatch log tail finishes loading.
type OutcomesLoadedMsg struct {
	Outcomes []heartbeatdto.OutcomeOutput
	Err      error
}

type Model struct {
	port     Port
	outcomes []heartbeatdto.OutcomeOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port}
}

// Reload fetches the latest dispatch outcomes.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		outcomes, err := port.Tail(context.Background(), 15)
		return OutcomesLoadedMsg{Outcomes: outcomes, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case OutcomesLoadedMsg:
		m.outcomes = msg.Outcomes
		m.err = msg.Err
	}
	return m, nil
}

// View renders the dispatch log; the enabled flag and status-bar text are
// rendered by the parent frame.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Recent heartbeats"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(theme.Bad.Render(fmt.Sprintf("load failed: %v", m.err)))
		return b.String()
	}
	if len(m.outcomes) == 0 {
		b.WriteString(theme.Muted.Render("no heartbeats dispatched yet"))
		return b.String()
	}
	for _, outcome := range m.outcomes {
		marker := theme.Good.Render("ok  ")
		if !outcome.OK {
			marker = theme.Bad.Render("fail")
		}
		line := fmt.Sprintf("%s %s %s", outcome.At.Format(time.TimeOnly), marker, outcome.Entity)
		if outcome.Err != "" {
			line += theme.Muted.Render("  " + outcome.Err)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
