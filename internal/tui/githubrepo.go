package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreagrandi/pipecreate/internal/credential"
	"github.com/andreagrandi/pipecreate/internal/github"
)

const (
	repoSubStateForm = iota
	repoSubStateRunning
	repoSubStateDone
)

// GithubRepoScreen asks for GitHub credentials and repository options,
// then creates the repository.
type GithubRepoScreen struct {
	session     *Session
	services    *Services
	form        form
	spinner     spinner.Model
	subState    int
	tokenSource string
	result      *github.Result
}

// NewGithubRepoScreen creates the repository form. The token is prefilled
// from the credential store when one is found.
func NewGithubRepoScreen(sess *Session, svc *Services) *GithubRepoScreen {
	var token, source string
	if svc.Credentials != nil {
		token, source, _ = svc.Credentials.GitHubToken()
	}

	tokenField := textField("token", "Token", "ghp_...", token)
	tokenField.input.EchoMode = textinput.EchoPassword
	tokenField.input.EchoCharacter = '*'
	tokenField.input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &GithubRepoScreen{
		session:  sess,
		services: svc,
		form: form{
			fields: []*formField{
				textField("username", "GitHub username", "octocat", sess.Defaults.GitHubUsername),
				tokenField,
				toggleField("private", "Private repository", "", false),
				toggleField("push", "Push the pipeline branches", "", true),
				toggleField("save", "Save the token for next time", "", false),
			},
			buttons: newButtonBar(
				button{ButtonCreateGithub, "Create GitHub repo"},
				button{ButtonBack, "Back"},
			),
		},
		spinner:     sp,
		tokenSource: source,
	}
}

func (g *GithubRepoScreen) Init() tea.Cmd {
	if g.subState == repoSubStateRunning {
		return g.spinner.Tick
	}
	return g.form.setFocus(g.form.focus)
}

func (g *GithubRepoScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if g.subState != repoSubStateRunning {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case RepoCreatedMsg:
		if msg.Err != nil {
			g.subState = repoSubStateForm
			return g, nil
		}
		g.subState = repoSubStateDone
		g.result = msg.Result
		g.form.buttons.set(
			button{ButtonShowLogging, "Show log"},
			button{ButtonExit, "Close"},
		)
		g.form.setFocus(len(g.form.visible()))
		return g, nil
	}

	switch g.subState {
	case repoSubStateRunning:
		return g, nil
	case repoSubStateDone:
		if key, ok := msg.(tea.KeyMsg); ok {
			if id, ok := g.form.buttons.update(key); ok {
				return g, pressed(id)
			}
		}
		return g, nil
	}

	id, ok, cmd := g.form.update(msg)
	if !ok {
		return g, cmd
	}

	if id == ButtonCreateGithub {
		return g, g.create()
	}
	return g, pressed(id)
}

func (g *GithubRepoScreen) create() tea.Cmd {
	g.form.clearErrors()

	req := github.Request{
		Username: g.form.field("username").value(),
		Token:    g.form.field("token").value(),
		Private:  g.form.field("private").on,
		Push:     g.form.field("push").on,
	}

	if req.Username == "" {
		g.form.field("username").err = "cannot be left empty"
	}
	if req.Token == "" {
		g.form.field("token").err = "cannot be left empty"
	}
	if req.Username == "" || req.Token == "" {
		return g.form.focusFirstError()
	}

	logger := g.session.Logger
	if g.form.field("save").on && g.services.Credentials != nil {
		if err := g.services.Credentials.Store(credential.GitHubTokenKeys[0], req.Token); err != nil {
			logger.Warn("Could not save the GitHub token", "err", err)
		} else {
			logger.Info("Saved the GitHub token")
		}
	}
	if g.services.RememberUsername != nil {
		if err := g.services.RememberUsername(req.Username); err != nil {
			logger.Warn("Could not remember the GitHub username", "err", err)
		}
	}

	if g.services.CreateRepo == nil {
		return func() tea.Msg {
			return RepoCreatedMsg{Err: errors.New("no repository service configured")}
		}
	}

	g.subState = repoSubStateRunning

	ctx := g.session.Ctx
	createRepo := g.services.CreateRepo
	cfg := g.session.Config.Clone()
	dir := g.session.PipelineDir
	if dir == "" {
		dir = cfg.PipelineDir()
	}

	return tea.Batch(g.spinner.Tick, func() tea.Msg {
		res, err := createRepo(ctx, req, cfg, dir)
		return RepoCreatedMsg{Result: res, Err: err}
	})
}

func (g *GithubRepoScreen) View() string {
	theme := g.session.Theme()
	var b strings.Builder

	b.WriteString("\n")

	switch g.subState {
	case repoSubStateRunning:
		b.WriteString("  " + g.spinner.View() + " Creating the GitHub repository...\n")

	case repoSubStateDone:
		b.WriteString(theme.Completed.Render("  \u2713 Repository created") + "\n")
		if g.result != nil {
			b.WriteString(theme.Dim.Render("      URL: "+g.result.HTMLURL) + "\n")
			if !g.result.Pushed {
				b.WriteString(theme.Dim.Render("      Nothing was pushed; push the branches yourself.") + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(g.form.buttons.view(theme, true))
		b.WriteString("\n")

	default:
		if g.tokenSource != "" {
			b.WriteString(theme.Dim.Render("  Token found in "+g.tokenSource+".") + "\n\n")
		}
		b.WriteString(g.form.view(theme))
	}

	return b.String()
}

func (g *GithubRepoScreen) StatusHints() []KeyHint {
	switch g.subState {
	case repoSubStateRunning:
		return nil
	case repoSubStateDone:
		return buttonHints()
	}
	return g.form.hints()
}

func (g *GithubRepoScreen) CapturingInput() bool {
	return g.subState == repoSubStateForm && g.form.capturing()
}

// SubState returns the current sub-state (for testing).
func (g *GithubRepoScreen) SubState() int {
	return g.subState
}

// FieldError returns the validation message shown for a field (for testing).
func (g *GithubRepoScreen) FieldError(key string) string {
	if field := g.form.field(key); field != nil {
		return field.err
	}
	return ""
}
