package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mid2vk/display"
	"mid2vk/midiin"
	"mid2vk/translate"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keysStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// refreshInterval drives the redraw; translation state changes on the MIDI
// thread, not through tea messages.
const refreshInterval = 100 * time.Millisecond

type tickMsg time.Time

type Model struct {
	Session    *midiin.Session
	Translator *translate.Translator
	Piano      *display.Piano
	quitting   bool
}

func NewModel(session *midiin.Session, tr *translate.Translator, piano *display.Piano) Model {
	return Model{
		Session:    session,
		Translator: tr,
		Piano:      piano,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Session.Stop()
			return m, tea.Quit
		}

	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "stopped\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("mid2vk"))
	b.WriteString("\n\n")

	if m.Session.Running() {
		b.WriteString(statusStyle.Render(fmt.Sprintf("port: %s", m.Session.PortName())))
	} else {
		b.WriteString(statusStyle.Render("port: (stopped)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.Piano.View())
	b.WriteString("\n\n")

	if keys := m.Translator.PressedKeys(); len(keys) > 0 {
		b.WriteString(keysStyle.Render("keys: " + strings.Join(keys, "+")))
	} else {
		b.WriteString(statusStyle.Render("keys: (none)"))
	}
	if m.Translator.Sustained() {
		b.WriteString(keysStyle.Render("  [sustain]"))
	}
	b.WriteString("\n\n")

	b.WriteString(statusStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}
