package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// GithubQuestionScreen asks whether to create a GitHub repository.
type GithubQuestionScreen struct {
	session *Session
	buttons buttonBar
}

// NewGithubQuestionScreen creates the repository question.
func NewGithubQuestionScreen(sess *Session) *GithubQuestionScreen {
	return &GithubQuestionScreen{
		session: sess,
		buttons: newButtonBar(
			button{ButtonGithubRepo, "Create GitHub repo"},
			button{ButtonExit, "Finish without creating a repo"},
		),
	}
}

func (g *GithubQuestionScreen) Init() tea.Cmd { return nil }

func (g *GithubQuestionScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if id, ok := g.buttons.update(key); ok {
			return g, pressed(id)
		}
	}
	return g, nil
}

func (g *GithubQuestionScreen) View() string {
	theme := g.session.Theme()
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  Do you want to create a GitHub repository for " + theme.Active.Render(g.session.Config.FullName()) + "?\n\n")
	b.WriteString(theme.Dim.Render("  The repository is created with the REST API and, if you like, every local") + "\n")
	b.WriteString(theme.Dim.Render("  branch is pushed to it. You need a token with the repo scope.") + "\n\n")
	b.WriteString(g.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (g *GithubQuestionScreen) StatusHints() []KeyHint {
	return buttonHints()
}
