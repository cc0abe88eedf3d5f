// Package gitrepo initializes a git repository for a freshly scaffolded
// project. It uses go-git so no git executable is required.
package gitrepo

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/quynhluu-labs/quynhluu/internal/branding"
)

// DefaultBranch is the branch a new repository starts on.
const DefaultBranch = "main"

// IsRepo reports whether path is inside an existing git working tree.
func IsRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// Author identifies who made the initial commit. Empty fields fall back to
// the user's git configuration, then to a CLI identity.
type Author struct {
	Name  string
	Email string
}

// Init creates a repository at path, stages everything, and records an
// initial commit. It returns the commit hash.
func Init(path string, author Author, message string) (string, error) {
	repo, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName(DefaultBranch)},
	})
	if err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("git worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	if message == "" {
		message = "Initial commit from " + branding.CLIName()
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: signature(repo, author)})
	if err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	return hash.String(), nil
}

func signature(repo *git.Repository, author Author) *object.Signature {
	sig := &object.Signature{Name: author.Name, Email: author.Email, When: time.Now()}
	if sig.Name != "" && sig.Email != "" {
		return sig
	}

	if cfg, err := repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
		if sig.Name == "" {
			sig.Name = cfg.User.Name
		}
		if sig.Email == "" {
			sig.Email = cfg.User.Email
		}
	}
	if sig.Name == "" {
		sig.Name = branding.DisplayName()
	}
	if sig.Email == "" {
		sig.Email = branding.CLIName() + "@localhost"
	}
	return sig
}

// ErrNotRepo is returned by Head when path holds no repository.
var ErrNotRepo = errors.New("not a git repository")

// Head returns the hash HEAD points at.
func Head(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return "", ErrNotRepo
	}
	if err != nil {
		return "", err
	}
	ref, err := repo.Head()
	if err != nil {
		return "", err
	}
	return ref.Hash().String(), nil
}
