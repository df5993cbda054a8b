package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrorScreen shows the last collaborator failure with the log tail.
type ErrorScreen struct {
	session *Session
	buttons buttonBar
	log     logView
}

// NewErrorScreen creates the error screen. It reads Session.LastErr each
// time it renders.
func NewErrorScreen(sess *Session) *ErrorScreen {
	return &ErrorScreen{
		session: sess,
		buttons: newButtonBar(
			button{ButtonBack, "Back"},
			button{ButtonCloseApp, "Close"},
		),
		log: newLogView(sess.Logs, 6),
	}
}

func (e *ErrorScreen) Init() tea.Cmd { return nil }

func (e *ErrorScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.log.resize(contentHeightFromTerminal(msg.Height) - 7)
	case tea.KeyMsg:
		if e.log.update(msg) {
			return e, nil
		}
		if id, ok := e.buttons.update(msg); ok {
			return e, pressed(id)
		}
	}
	return e, nil
}

func (e *ErrorScreen) View() string {
	theme := e.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Error.Render("  Something went wrong.") + "\n")
	if err := e.session.LastErr; err != nil {
		b.WriteString(theme.Error.Render("  "+err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(e.log.view(theme))
	b.WriteString("\n")
	b.WriteString(e.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (e *ErrorScreen) StatusHints() []KeyHint {
	return append(buttonHints(), e.log.hints()...)
}
