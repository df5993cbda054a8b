package scaffold

import (
	"fmt"
	"time"

	"github.com/andreagrandi/pipecreate/internal/app"
	"github.com/andreagrandi/pipecreate/internal/pipeline"
	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// DefaultBranch is the branch holding the first commit.
const DefaultBranch = "master"

// Branches are created in every new pipeline repository, all pointing at
// the initial commit.
var Branches = []string{DefaultBranch, "TEMPLATE", "dev"}

func initRepo(dir string, cfg *pipeline.Config, when time.Time) error {
	repo, err := git.PlainInit(dir, false, git.WithDefaultBranch(plumbing.NewBranchReferenceName(DefaultBranch)))
	if err != nil {
		return fmt.Errorf("git init %q: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("git add: %w", err)
	}

	hash, err := wt.Commit(app.New().CommitMessage(), &git.CommitOptions{
		Author: &object.Signature{Name: cfg.Author, Email: "", When: when},
	})
	if err != nil {
		return fmt.Errorf("git commit: %w", err)
	}

	for _, branch := range Branches[1:] {
		ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)
		if err := repo.Storer.SetReference(ref); err != nil {
			return fmt.Errorf("create branch %s: %w", branch, err)
		}
	}

	return nil
}
