package gitlib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

var ErrNotRepository = errors.New("not a git repository")

type DotGit struct {
	Branch string
	Sha    string
	Root   string
	Dirty  bool
}

// FromPath describes the git worktree containing path, walking up to the first directory holding a .git entry.
func FromPath(path string) (found DotGit, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return DotGit{}, err
	}

	root, repo, err := FindDotGit(abs)
	if err != nil {
		return DotGit{}, err
	}

	head, err := repo.Head()
	if err != nil {
		return DotGit{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	found.Root = root
	found.Sha = head.Hash().String()
	if head.Name().IsBranch() {
		found.Branch = head.Name().Short()
	}

	if found.Dirty, err = Dirty(repo); err != nil {
		return DotGit{}, err
	}

	return found, nil
}

func FindDotGit(dir string) (string, *git.Repository, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			repo, err := git.PlainOpen(dir)
			if err != nil {
				return "", nil, err
			}

			return dir, repo, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, ErrNotRepository
		}
		dir = parent
	}
}

func Dirty(repo *git.Repository) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return false, err
	}

	status, err := wt.Status()
	if err != nil {
		return false, err
	}

	return !status.IsClean(), nil
}
