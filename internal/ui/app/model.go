package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	heartbeatdto "github.com/Kovah/obsidian-wakatime/internal/modules/heartbeat/dto"
	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	"github.com/Kovah/obsidian-wakatime/internal/ui/theme"
	settingsview "github.com/Kovah/obsidian-wakatime/internal/ui/views/settings"
	statusview "github.com/Kovah/obsidian-wakatime/internal/ui/views/status"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface this orchestration layer requires.

type settingsPort interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error)
	SetEnabled(ctx context.Context, enabled bool) (settingsdto.SettingsOutput, error)
}

type heartbeatPort interface {
	Tail(ctx context.Context, limit int) ([]heartbeatdto.OutcomeOutput, error)
}

type statusPort interface {
	Status() string
	TakeNotice() string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabStatus tabID = iota
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Status", "Settings"}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	vaultName string
	status    statusPort

	tab      tabID
	statusV  statusview.Model
	settings settingsview.Model

	statusText string
	notice     string
	width      int
	height     int
}

func NewModel(vaultName string, settings settingsPort, heartbeats heartbeatPort, status statusPort) Model {
	return Model{
		vaultName: vaultName,
		status:    status,
		statusV:   statusview.New(heartbeats),
		settings:  settingsview.New(settings),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusV.Reload(), m.settings.Reload(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.statusV, cmd = m.statusV.Update(msg)
		cmds = append(cmds, cmd)
		m.settings, cmd = m.settings.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tickMsg:
		// Poll the shared status text and pending notice the same way an
		// editor host would over the bridge.
		m.statusText = m.status.Status()
		if notice := m.status.TakeNotice(); notice != "" {
			m.notice = notice
		}
		cmds := []tea.Cmd{tick()}
		if m.tab == tabStatus {
			cmds = append(cmds, m.statusV.Reload())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Tab):
			m.tab = (m.tab + 1) % tabCount
			m.notice = ""
			return m, nil
		case key.Matches(msg, keys.Refresh):
			return m, tea.Batch(m.statusV.Reload(), m.settings.Reload())
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case tabStatus:
		m.statusV, cmd = m.statusV.Update(msg)
	case tabSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var tabs []string
	for i, label := range tabLabels {
		if tabID(i) == m.tab {
			tabs = append(tabs, theme.Hot.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Muted.Render(" "+label+" "))
		}
	}
	header := theme.Title.Render("obsidian-wakatime · "+m.vaultName) + "  " + strings.Join(tabs, " ")

	var body string
	switch m.tab {
	case tabStatus:
		body = m.statusV.View()
	case tabSettings:
		body = m.settings.View()
	}

	statusBar := theme.Muted.Render(m.statusText)
	if m.notice != "" {
		statusBar = theme.Bad.Render(m.notice)
	}

	frame := lipgloss.JoinVertical(lipgloss.Left, header, "", theme.Pane.Render(body), statusBar)
	return theme.App.Render(frame)
}
