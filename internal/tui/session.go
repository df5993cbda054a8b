package tui

import (
	"context"

	"github.com/andreagrandi/pipecreate/internal/config"
	"github.com/andreagrandi/pipecreate/internal/features"
	"github.com/andreagrandi/pipecreate/internal/github"
	"github.com/andreagrandi/pipecreate/internal/log"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
)

// LoggingState marks whether the logging screen shows the completion
// banner.
type LoggingState int

const (
	LoggingUnset LoggingState = iota
	LoggingRepoCreated
)

// Session is the state shared by every screen for one wizard run.
type Session struct {
	Config       *pipeline.Config
	PipelineType pipeline.Type
	LoggingState LoggingState
	Dark         bool
	Logs         *log.Sink
	Logger       *log.Logger
	// LastErr is the collaborator failure shown by the error screen.
	LastErr error
	// PipelineDir is set once scaffolding succeeds.
	PipelineDir string
	Defaults    config.Defaults

	Ctx   context.Context
	theme Theme
}

// NewSession creates a session with an empty configuration prefilled from
// the user's defaults.
func NewSession(ctx context.Context, defaults config.Defaults, logger *log.Logger, logs *log.Sink) *Session {
	cfg := pipeline.New()
	cfg.Author = defaults.Author
	cfg.Org = defaults.Org
	if defaults.OutDir != "" {
		cfg.OutDir = defaults.OutDir
	}

	if logger == nil {
		logger = log.GetLogger()
	}
	if logs == nil {
		logs = log.NewSink(log.DefaultSinkSize)
	}

	return &Session{
		Config:   cfg,
		Dark:     true,
		Logs:     logs,
		Logger:   logger,
		Defaults: defaults,
		Ctx:      ctx,
		theme:    NewTheme(true),
	}
}

// Theme returns the styles for the current display mode.
func (s *Session) Theme() Theme {
	return s.theme
}

// ToggleDark flips the display mode.
func (s *Session) ToggleDark() {
	s.Dark = !s.Dark
	s.theme = NewTheme(s.Dark)
}

// SetPipelineType records the chosen type on the session and config.
func (s *Session) SetPipelineType(t pipeline.Type) {
	s.PipelineType = t
	s.Config.ApplyType(t)
}

// CredentialStore resolves and saves the GitHub token.
type CredentialStore interface {
	GitHubToken() (token string, source string, found bool)
	Store(key, value string) error
}

// Services are the collaborators screens call into. Scaffold and
// CreateRepo run inside tea.Cmd goroutines.
type Services struct {
	Scaffold         func(ctx context.Context, cfg *pipeline.Config) (string, error)
	CreateRepo       func(ctx context.Context, req github.Request, cfg *pipeline.Config, dir string) (*github.Result, error)
	Catalog          *features.Catalog
	Credentials      CredentialStore
	RememberUsername func(username string) error
}
