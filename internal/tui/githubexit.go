package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// GithubExitScreen explains how to publish the pipeline by hand.
type GithubExitScreen struct {
	session *Session
	buttons buttonBar
}

// NewGithubExitScreen creates the closing instructions screen.
func NewGithubExitScreen(sess *Session) *GithubExitScreen {
	return &GithubExitScreen{
		session: sess,
		buttons: newButtonBar(
			button{ButtonCloseApp, "Close"},
			button{ButtonBack, "Back"},
		),
	}
}

func (g *GithubExitScreen) Init() tea.Cmd { return nil }

func (g *GithubExitScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if id, ok := g.buttons.update(key); ok {
			return g, pressed(id)
		}
	}
	return g, nil
}

func (g *GithubExitScreen) View() string {
	theme := g.session.Theme()
	cfg := g.session.Config

	dir := g.session.PipelineDir
	if dir == "" {
		dir = cfg.PipelineDir()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + theme.Completed.Render("Your pipeline is ready.") + " To publish it later, create an empty\n")
	b.WriteString("  repository called " + theme.Active.Render(cfg.FullName()) + " on GitHub and run:\n\n")
	b.WriteString(theme.Normal.Render("    cd "+dir) + "\n")
	b.WriteString(theme.Normal.Render("    git remote add origin git@github.com:"+cfg.FullName()+".git") + "\n")
	b.WriteString(theme.Normal.Render("    git push --all origin") + "\n\n")
	b.WriteString(theme.Dim.Render("  The TEMPLATE branch is used to sync future template updates.") + "\n\n")
	b.WriteString(g.buttons.view(theme, true))
	b.WriteString("\n")

	return b.String()
}

func (g *GithubExitScreen) StatusHints() []KeyHint {
	return append(buttonHints(), KeyHint{Key: "Esc", Desc: "back"})
}
