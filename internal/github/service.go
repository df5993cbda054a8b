// Package github creates the remote repository for a freshly scaffolded
// pipeline and pushes its branches.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/andreagrandi/pipecreate/internal/log"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	gh "github.com/google/go-github/v30/github"
)

var (
	// ErrRepoExists is returned when the target repository already exists.
	ErrRepoExists = errors.New("repository already exists")
	// ErrMissingCredentials is returned when no username or token is given.
	ErrMissingCredentials = errors.New("GitHub username and token are required")
	// ErrNotRepository is returned when a push is requested for a directory
	// that holds no git repository.
	ErrNotRepository = errors.New("pipeline directory is not a git repository")
)

// Request holds what the user entered on the repository screen.
type Request struct {
	Username string
	Token    string
	Private  bool
	// Push sends every local branch to the new repository.
	Push bool
}

// Result describes the created repository.
type Result struct {
	Owner    string
	HTMLURL  string
	CloneURL string
	Pushed   bool
}

// PushFunc pushes all branches of the repository at dir to remoteURL.
type PushFunc func(ctx context.Context, dir, remoteURL, username, token string) error

// Service talks to the GitHub REST API.
type Service struct {
	NewClient func(username, token string) *gh.Client
	Push      PushFunc
	// CheckRepo runs before any API call when a push is requested.
	CheckRepo func(dir string) error
	Logger    *log.Logger
}

// NewService returns a service using api.github.com and go-git for pushes.
func NewService() *Service {
	return &Service{
		NewClient: NewClient,
		Push:      PushBranches,
		CheckRepo: CheckRepository,
		Logger:    log.GetLogger(),
	}
}

// NewClient authenticates with the token as a basic auth password.
func NewClient(username, token string) *gh.Client {
	tp := gh.BasicAuthTransport{Username: username, Password: token}
	return gh.NewClient(tp.Client())
}

// Create makes a repository named after the pipeline. It is created under
// the pipeline organisation unless that is the authenticated user.
func (s *Service) Create(ctx context.Context, req Request, cfg *pipeline.Config, dir string) (*Result, error) {
	username := strings.TrimSpace(req.Username)
	token := strings.TrimSpace(req.Token)
	if username == "" || token == "" {
		return nil, ErrMissingCredentials
	}

	if req.Push && s.CheckRepo != nil {
		if err := s.CheckRepo(dir); err != nil {
			return nil, err
		}
	}

	logger := s.logger()
	client := s.NewClient(username, token)

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("authenticate as %q: %w", username, err)
	}
	login := user.GetLogin()
	logger.Info("Authenticated to GitHub", "user", login)

	owner, org := login, ""
	if cfg.Org != "" && !strings.EqualFold(cfg.Org, login) {
		owner, org = cfg.Org, cfg.Org
	}

	_, resp, err := client.Repositories.Get(ctx, owner, cfg.Name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s/%s", ErrRepoExists, owner, cfg.Name)
	case resp != nil && resp.StatusCode == http.StatusNotFound:
	default:
		return nil, fmt.Errorf("check repository %s/%s: %w", owner, cfg.Name, err)
	}

	repo, _, err := client.Repositories.Create(ctx, org, &gh.Repository{
		Name:        gh.String(cfg.Name),
		Description: gh.String(cfg.Description),
		Private:     gh.Bool(req.Private),
	})
	if err != nil {
		return nil, fmt.Errorf("create repository %s/%s: %w", owner, cfg.Name, err)
	}

	result := &Result{
		Owner:    owner,
		HTMLURL:  repo.GetHTMLURL(),
		CloneURL: repo.GetCloneURL(),
	}
	logger.Info("GitHub repository created", "url", result.HTMLURL, "private", req.Private)

	if req.Push {
		if err := s.Push(ctx, dir, result.CloneURL, username, token); err != nil {
			return result, fmt.Errorf("push to %s: %w", result.CloneURL, err)
		}
		result.Pushed = true
		logger.Info("Pushed branches", "remote", result.CloneURL)
	} else {
		logger.Info("Skipped push; add the remote and push manually", "remote", result.CloneURL)
	}

	return result, nil
}

func (s *Service) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.GetLogger()
}
