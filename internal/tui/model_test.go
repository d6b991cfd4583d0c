package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bastiangx/khmertype/pkg/predict"
	"github.com/bastiangx/khmertype/pkg/session"
)

type nullPredictor struct{}

func (nullPredictor) Suggest(ctx context.Context, text string, limit int) ([]predict.Suggestion, error) {
	return nil, nil
}

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	sess := session.New(nullPredictor{}, session.Config{
		Debounce:      time.Hour, // never fires during a test
		MaxCandidates: 5,
	}, nil)
	t.Cleanup(sess.Close)
	return New(sess, "dark", nil, nil), sess
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func withCandidates(m Model, words ...string) Model {
	candidates := make([]predict.Suggestion, len(words))
	for i, w := range words {
		candidates[i] = predict.Suggestion{Word: w, Rank: i + 1}
	}
	updated, _ := m.Update(eventMsg(session.Event{
		Kind:       session.EventState,
		Status:     session.StatusReady,
		Candidates: candidates,
	}))
	return updated.(Model)
}

func TestDigitShortcutInsertsCandidate(t *testing.T) {
	m, sess := newTestModel(t)
	m = withCandidates(m, "ស្រលាញ់", "ស្រុក")

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)

	if got := sess.Text(); got != "ស្រុក " {
		t.Fatalf("expected shortcut to insert candidate 2, buffer = %q", got)
	}
	if strings.Contains(m.input.Value(), "2") {
		t.Fatalf("digit leaked into the text field: %q", m.input.Value())
	}
}

func TestKhmerDigitShortcutInsertsCandidate(t *testing.T) {
	m, sess := newTestModel(t)
	m = withCandidates(m, "ស្រលាញ់", "ស្រុក")

	m.Update(keyMsg("១"))

	if got := sess.Text(); got != "ស្រលាញ់ " {
		t.Fatalf("expected Khmer digit ១ to insert candidate 1, buffer = %q", got)
	}
}

func TestDigitWithoutCandidateFallsThroughAsText(t *testing.T) {
	m, sess := newTestModel(t)
	m = withCandidates(m, "ស្រលាញ់", "ស្រុក")

	updated, _ := m.Update(keyMsg("3"))
	m = updated.(Model)

	if m.input.Value() != "3" {
		t.Fatalf("expected the digit typed as ordinary text, field = %q", m.input.Value())
	}
	if got := sess.Text(); got != "3" {
		t.Fatalf("session mirror should follow the typed digit, got %q", got)
	}
}

func TestInsertEventSyncsTextField(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(eventMsg(session.Event{
		Kind: session.EventInsert,
		Text: "ខ្ញុំ ស្រលាញ់ ",
	}))
	m = updated.(Model)

	if m.input.Value() != "ខ្ញុំ ស្រលាញ់ " {
		t.Fatalf("text field not synced after insert: %q", m.input.Value())
	}
}

func TestTypingForwardsBufferToSession(t *testing.T) {
	m, sess := newTestModel(t)

	updated, _ := m.Update(keyMsg("ក"))
	m = updated.(Model)
	updated, _ = m.Update(keyMsg("ា"))
	m = updated.(Model)

	if got := sess.Text(); got != "កា" {
		t.Fatalf("session buffer mirror = %q, want %q", got, "កា")
	}
}

func TestThemeToggleInvokesCallback(t *testing.T) {
	sess := session.New(nullPredictor{}, session.Config{Debounce: time.Hour}, nil)
	t.Cleanup(sess.Close)

	var saved string
	m := New(sess, "dark", func(theme string) { saved = theme }, nil)

	updated, _ := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlT}))
	m = updated.(Model)

	if m.theme != "light" {
		t.Fatalf("expected theme flipped to light, got %q", m.theme)
	}
	if saved != "light" {
		t.Fatalf("theme callback not invoked, saved = %q", saved)
	}
}

func TestViewRendersCandidatesAndStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m = withCandidates(m, "ស្រលាញ់", "ស្រុក")

	view := m.View()
	if !strings.Contains(view, "ស្រលាញ់") || !strings.Contains(view, "ស្រុក") {
		t.Fatal("candidates missing from view")
	}
	if !strings.Contains(view, "ready") {
		t.Fatal("status line missing from view")
	}
}
