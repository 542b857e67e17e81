// Package project locates the Python project a bootstrap run operates on.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pybootstrap/internal/logging"

	"github.com/go-git/go-git/v6"
)

// ManifestFile marks the root of a Python project.
const ManifestFile = "pyproject.toml"

// FindRoot returns the project directory for a run started in dir.
//
// The search walks up from dir looking for ManifestFile and stops at the
// enclosing git worktree root, so a manifest outside the repository is never
// picked up. When no manifest is found, dir itself is the project.
func FindRoot(dir string) (string, error) {
	defer logging.LogPerformance("project.FindRoot", time.Now())

	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	boundary, err := WorktreeRoot(start)
	if err != nil {
		return "", err
	}

	for current := start; ; {
		if hasManifest(current) {
			logging.Debug("Project manifest found", "dir", current)
			return current, nil
		}
		if current == boundary {
			break
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	logging.Warn("No "+ManifestFile+" found", "project", start)
	return start, nil
}

// WorktreeRoot returns the root of the git worktree containing dir, or ""
// when dir is not inside a repository.
func WorktreeRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("failed to open repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to bound the search.
		if errors.Is(err, git.ErrIsBareRepository) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get working tree: %w", err)
	}
	return filepath.Clean(worktree.Filesystem.Root()), nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && !info.IsDir()
}
