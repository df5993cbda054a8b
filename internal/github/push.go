package github

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v6"
	gitconfig "github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing/transport"
	githttp "github.com/go-git/go-git/v6/plumbing/transport/http"
)

// RemoteName is the remote added to the local pipeline repository.
const RemoteName = "origin"

var allBranches = gitconfig.RefSpec("refs/heads/*:refs/heads/*")

// CheckRepository fails with ErrNotRepository unless dir can be pushed from.
func CheckRepository(dir string) error {
	if _, err := git.PlainOpen(dir); err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return fmt.Errorf("open repository %q: %w", dir, err)
	}
	return nil
}

// PushBranches pushes every local branch over HTTPS using the token.
func PushBranches(ctx context.Context, dir, remoteURL, username, token string) error {
	return push(ctx, dir, remoteURL, &githttp.BasicAuth{Username: username, Password: token})
}

func push(ctx context.Context, dir, remoteURL string, auth transport.AuthMethod) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open repository %q: %w", dir, err)
	}

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: RemoteName,
		URLs: []string{remoteURL},
	})
	if err != nil && !errors.Is(err, git.ErrRemoteExists) {
		return fmt.Errorf("add remote %s: %w", RemoteName, err)
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: RemoteName,
		RefSpecs:   []gitconfig.RefSpec{allBranches},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return err
	}

	return nil
}
