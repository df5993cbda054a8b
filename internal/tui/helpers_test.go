package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/andreagrandi/pipecreate/internal/config"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/log"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	sink := log.NewSink(200)
	return NewSession(context.Background(), config.Defaults{}, log.New(sink, "debug"), sink)
}

func testServices() *Services {
	return &Services{Catalog: features.MustDefault()}
}

// startedModel returns a wizard that has handled its ready message.
func startedModel(t *testing.T, sess *Session, svc *Services) WizardModel {
	t.Helper()

	model := NewWizardModel(sess, svc, "0.1.0")
	cmd := model.Init()
	require.NotNil(t, cmd)

	updated, _ := model.Update(cmd())
	return updated.(WizardModel)
}

func press(t *testing.T, m WizardModel, ids ...ButtonID) (WizardModel, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, id := range ids {
		var updated tea.Model
		updated, cmd = m.Update(ButtonPressedMsg{ID: id})
		m = updated.(WizardModel)
	}
	return m, cmd
}

func sendKey(t *testing.T, m WizardModel, key tea.KeyMsg) (WizardModel, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(key)
	return updated.(WizardModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// typeInto sends each rune of text as a key press to a screen.
func typeInto(s Screen, text string) Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}
