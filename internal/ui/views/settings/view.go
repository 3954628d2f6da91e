package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	settingsdto "github.com/Kovah/obsidian-wakatime/internal/modules/settings/dto"
	"github.com/Kovah/obsidian-wakatime/internal/ui/theme"
)

// Port is the minimal interface this view needs from the settings
// use-case.
type Port interface {
	Get(ctx context.Context) (settingsdto.SettingsOutput, error)
	Update(ctx context.Context, input settingsdto.UpdateInput) (settingsdto.SettingsOutput, error)
	SetEnabled(ctx context.Context, enabled bool) (settingsdto.SettingsOutput, error)
}

// LoadedMsg is sent when settings finish loading from the store.
type LoadedMsg struct {
	Settings settingsdto.SettingsOutput
	Err      error
}

// SavedMsg is sent when a save or toggle round-trip completes.
type SavedMsg struct {
	Settings settingsdto.SettingsOutput
	Err      error
}

// field indexes into the form, top to bottom.
type field int

const (
	fieldAPIKey field = iota
	fieldAPIURL
	fieldProject
	fieldIgnore
	fieldAssociations
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"API key",
	"Wakapi base URL (empty for wakatime.com)",
	"Default project",
	"Ignored paths (one fragment per line)",
	"Project associations (one path@project per line)",
}

type Model struct {
	port     Port
	inputs   [3]textinput.Model
	areas    [2]textarea.Model
	focus    field
	enabled  bool
	feedback string
	width    int
	height   int
}

func New(port Port) Model {
	m := Model{port: port}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Prompt = "> "
		m.inputs[i] = ti
	}
	m.inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	for i := range m.areas {
		ta := textarea.New()
		ta.SetHeight(4)
		ta.ShowLineNumbers = false
		m.areas[i] = ta
	}
	m.inputs[fieldAPIKey].Focus()
	return m
}

// Reload fetches the persisted settings into the form.
func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Get(context.Background())
		return LoadedMsg{Settings: out, Err: err}
	}
}

func (m Model) save() tea.Cmd {
	port := m.port
	input := settingsdto.UpdateInput{
		APIKey:           m.inputs[fieldAPIKey].Value(),
		APIURL:           m.inputs[fieldAPIURL].Value(),
		DefaultProject:   m.inputs[fieldProject].Value(),
		IgnoreText:       m.areas[0].Value(),
		AssociationsText: m.areas[1].Value(),
	}
	return func() tea.Msg {
		out, err := port.Update(context.Background(), input)
		return SavedMsg{Settings: out, Err: err}
	}
}

func (m Model) toggle() tea.Cmd {
	port := m.port
	next := !m.enabled
	return func() tea.Msg {
		out, err := port.SetEnabled(context.Background(), next)
		return SavedMsg{Settings: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case LoadedMsg:
		if msg.Err != nil {
			m.feedback = fmt.Sprintf("load failed: %v", msg.Err)
			return m, nil
		}
		m.apply(msg.Settings)
		return m, nil
	case SavedMsg:
		if msg.Err != nil {
			m.feedback = msg.Err.Error()
			return m, nil
		}
		m.apply(msg.Settings)
		m.feedback = "saved"
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+s":
			return m, m.save()
		case "ctrl+t":
			return m, m.toggle()
		}
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldIgnore:
		m.areas[0], cmd = m.areas[0].Update(msg)
	case fieldAssociations:
		m.areas[1], cmd = m.areas[1].Update(msg)
	default:
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m *Model) apply(out settingsdto.SettingsOutput) {
	m.enabled = out.Enabled
	m.inputs[fieldAPIKey].SetValue(out.APIKey)
	m.inputs[fieldAPIURL].SetValue(out.APIURL)
	m.inputs[fieldProject].SetValue(out.DefaultProject)
	m.areas[0].SetValue(out.IgnoreText)
	m.areas[1].SetValue(out.AssociationsText)
}

func (m *Model) setFocus(next field) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	for i := range m.areas {
		m.areas[i].Blur()
	}
	m.focus = next
	switch next {
	case fieldIgnore:
		m.areas[0].Focus()
	case fieldAssociations:
		m.areas[1].Focus()
	default:
		m.inputs[next].Focus()
	}
}

func (m Model) View() string {
	var b strings.Builder
	state := theme.Bad.Render("tracking off")
	if m.enabled {
		state = theme.Good.Render("tracking on")
	}
	b.WriteString(theme.Title.Render("Settings") + "  " + state)
	b.WriteString("\n\n")

	for f := fieldAPIKey; f < fieldCount; f++ {
		label := fieldLabels[f]
		if f == m.focus {
			b.WriteString(theme.Hot.Render(label))
		} else {
			b.WriteString(theme.Muted.Render(label))
		}
		b.WriteString("\n")
		switch f {
		case fieldIgnore:
			b.WriteString(m.areas[0].View())
		case fieldAssociations:
			b.WriteString(m.areas[1].View())
		default:
			b.WriteString(m.inputs[f].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Muted.Render("↑/↓ move · ctrl+s save · ctrl+t toggle tracking"))
	if m.feedback != "" {
		b.WriteString("\n" + theme.Hot.Render(m.feedback))
	}
	return b.String()
}
