package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// WelcomeScreen introduces the wizard.
type WelcomeScreen struct {
	session *Session
	buttons buttonBar
}

// NewWelcomeScreen creates the first screen of the wizard.
func NewWelcomeScreen(sess *Session) *WelcomeScreen {
	return &WelcomeScreen{
		session: sess,
		buttons: newButtonBar(button{ButtonStart, "Let's go!"}),
	}
}

func (w *WelcomeScreen) Init() tea.Cmd { return nil }

func (w *WelcomeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if id, ok := w.buttons.update(key); ok {
			return w, pressed(id)
		}
	}
	return w, nil
}

func (w *WelcomeScreen) View() string {
	theme := w.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + theme.Active.Render(app.SubTitle) + "\n\n")
	b.WriteString("  This wizard creates a new Nextflow pipeline. It asks a few questions,\n")
	b.WriteString("  writes the pipeline skeleton and can publish it to a new GitHub repository.\n\n")
	b.WriteString("  Template-based pipelines follow the community guidelines and live in the\n")
	b.WriteString("  " + pipeline.TemplateOrg + " organisation. Custom pipelines let you pick every feature.\n\n")
	b.WriteString(w.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (w *WelcomeScreen) StatusHints() []KeyHint {
	return []KeyHint{{Key: "Enter", Desc: "start"}}
}
