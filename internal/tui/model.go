// Package tui is the terminal front-end for the predictive input session:
// a text field, a numbered candidate bar, and a status line. It is a thin
// adapter that turns key events into session calls and session events into
// redraws; all orchestration lives in pkg/session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/khmertype/internal/utils"
	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/session"
)

// eventMsg wraps a session event for the bubbletea loop
type eventMsg session.Event

// Model is the bubbletea model for the input screen
type Model struct {
	sess   *session.Session
	input  textinput.Model
	keymap KeyMap
	styles Styles
	log    *log.Logger

	theme   string
	onTheme func(theme string)

	candidates []predict.Suggestion
	status     session.Status
	width      int
	lastSent   string
}

// New creates the front-end model. onTheme is called when the user toggles
// the theme so the preference can be persisted; it may be nil.
func New(sess *session.Session, theme string, onTheme func(string), logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "វាយអក្សរខ្មែរនៅទីនេះ..."
	ti.Prompt = "┃ "
	ti.Focus()

	return Model{
		sess:    sess,
		input:   ti,
		keymap:  DefaultKeyMap(),
		styles:  StylesForTheme(theme),
		log:     logger,
		theme:   theme,
		onTheme: onTheme,
		status:  session.StatusIdle,
	}
}

// Init starts cursor blinking and the session event pump
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.sess.Events()))
}

// waitForEvent yields the next session event as a tea message
func waitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

// Update is the event loop body
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case eventMsg:
		return m.handleSessionEvent(session.Event(msg))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.sess.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keymap.ClearLine):
			m.input.SetValue("")
			m.lastSent = ""
			m.candidates = nil
			m.sess.Clear()
			return m, nil

		case key.Matches(msg, m.keymap.ToggleTheme):
			if m.theme == "dark" {
				m.theme = "light"
			} else {
				m.theme = "dark"
			}
			m.styles = StylesForTheme(m.theme)
			if m.onTheme != nil {
				m.onTheme(m.theme)
			}
			return m, nil
		}

		// Digit shortcuts insert from the rendered list; a digit with no
		// candidate at that position is ordinary text and falls through.
		if pos := utils.DigitValue(msg.String()); pos >= 1 && pos <= len(m.candidates) {
			m.sess.Insert(m.candidates[pos-1].Word)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.lastSent {
		m.lastSent = value
		m.sess.SetText(value)
	}
	return m, cmd
}

// handleSessionEvent folds a session snapshot into the view state
func (m Model) handleSessionEvent(ev session.Event) (tea.Model, tea.Cmd) {
	m.status = ev.Status
	m.candidates = ev.Candidates
	if ev.Kind == session.EventInsert {
		m.input.SetValue(ev.Text)
		m.input.CursorEnd()
		m.lastSent = ev.Text
	}
	return m, waitForEvent(m.sess.Events())
}

// View renders the input screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("ខ្មែរ · Khmer Predictive Input"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.candidateBar())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Status.Render(m.status.String()))
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("1-5 insert · esc clear · ctrl+t theme · ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

// candidateBar renders the numbered candidate chips
func (m Model) candidateBar() string {
	if len(m.candidates) == 0 {
		switch m.status {
		case session.StatusLoading:
			return m.styles.Empty.Render("…")
		default:
			return m.styles.Empty.Render("no suggestions")
		}
	}

	var b strings.Builder
	for i, c := range m.candidates {
		chip := fmt.Sprintf("%s %s", m.styles.Ordinal.Render(fmt.Sprintf("%d", i+1)), c.Word)
		b.WriteString(m.styles.Candidate.Render(chip))
	}
	return b.String()
}

// Run starts the program and blocks until exit
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
