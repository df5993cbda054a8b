package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// LoggingScreen shows the full log. It is built anew on every visit so the
// banner and the button follow the LoggingState at that moment.
type LoggingScreen struct {
	session *Session
	created bool
	buttons buttonBar
	log     logView
}

// NewLoggingScreen creates a logging screen for the current session.
func NewLoggingScreen(sess *Session) *LoggingScreen {
	created := sess.LoggingState == LoggingRepoCreated

	buttons := newButtonBar(button{ButtonCloseScreen, "Close log"})
	if created {
		buttons = newButtonBar(button{ButtonCloseApp, "Close"})
	}

	return &LoggingScreen{
		session: sess,
		created: created,
		buttons: buttons,
		log:     newLogView(sess.Logs, ContentHeight-6),
	}
}

func (l *LoggingScreen) Init() tea.Cmd { return nil }

func (l *LoggingScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.log.resize(contentHeightFromTerminal(msg.Height) - 6)
	case tea.KeyMsg:
		if l.log.update(msg) {
			return l, nil
		}
		if id, ok := l.buttons.update(msg); ok {
			return l, pressed(id)
		}
	}
	return l, nil
}

func (l *LoggingScreen) View() string {
	theme := l.session.Theme()
	var b strings.Builder

	if l.created {
		b.WriteString(theme.Banner.Render("Pipeline created and published") + "\n")
	} else {
		b.WriteString("\n  " + theme.Active.Render("Log") + "\n\n")
	}

	b.WriteString(l.log.view(theme))
	b.WriteString("\n")
	b.WriteString(l.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (l *LoggingScreen) StatusHints() []KeyHint {
	return append(buttonHints(), l.log.hints()...)
}

// Button returns the id of the only button (for testing).
func (l *LoggingScreen) Button() ButtonID {
	return l.buttons.current()
}
