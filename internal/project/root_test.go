package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v6"
)

func resolved(t *testing.T, path string) string {
	t.Helper()
	r, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", path, err)
	}
	return r
}

func writeManifest(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte("[project]\nname = \"demo\"\n"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (start, want string)
	}{
		{
			name: "manifest in start directory",
			setup: func(t *testing.T) (string, string) {
				dir := resolved(t, t.TempDir())
				writeManifest(t, dir)
				return dir, dir
			},
		},
		{
			name: "manifest at repository root",
			setup: func(t *testing.T) (string, string) {
				repoPath := resolved(t, t.TempDir())
				if _, err := git.PlainInit(repoPath, false); err != nil {
					t.Fatalf("failed to initialize git repo: %v", err)
				}
				writeManifest(t, repoPath)
				sub := filepath.Join(repoPath, "src", "pkg")
				if err := os.MkdirAll(sub, 0755); err != nil {
					t.Fatal(err)
				}
				return sub, repoPath
			},
		},
		{
			name: "manifest outside repository is ignored",
			setup: func(t *testing.T) (string, string) {
				outer := resolved(t, t.TempDir())
				writeManifest(t, outer)
				repoPath := filepath.Join(outer, "repo")
				if _, err := git.PlainInit(repoPath, false); err != nil {
					t.Fatalf("failed to initialize git repo: %v", err)
				}
				sub := filepath.Join(repoPath, "docs")
				if err := os.MkdirAll(sub, 0755); err != nil {
					t.Fatal(err)
				}
				return sub, sub
			},
		},
		{
			name: "plain directory",
			setup: func(t *testing.T) (string, string) {
				dir := resolved(t, t.TempDir())
				return dir, dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, want := tt.setup(t)

			got, err := FindRoot(start)
			if err != nil {
				t.Fatalf("FindRoot failed: %v", err)
			}
			if got != want {
				t.Errorf("Expected %s, got %s", want, got)
			}
		})
	}
}

func TestFindRoot_RelativePath(t *testing.T) {
	dir := resolved(t, t.TempDir())
	writeManifest(t, dir)
	t.Chdir(dir)

	got, err := FindRoot(".")
	if err != nil {
		t.Fatalf("FindRoot failed: %v", err)
	}
	if got != dir {
		t.Errorf("Expected %s, got %s", dir, got)
	}
}

func TestWorktreeRoot(t *testing.T) {
	t.Run("outside repository", func(t *testing.T) {
		root, err := WorktreeRoot(t.TempDir())
		if err != nil {
			t.Fatalf("WorktreeRoot failed: %v", err)
		}
		if root != "" {
			t.Errorf("Expected no worktree, got %s", root)
		}
	})

	t.Run("nested directory", func(t *testing.T) {
		repoPath := resolved(t, t.TempDir())
		if _, err := git.PlainInit(repoPath, false); err != nil {
			t.Fatalf("failed to initialize git repo: %v", err)
		}
		sub := filepath.Join(repoPath, "a", "b")
		if err := os.MkdirAll(sub, 0755); err != nil {
			t.Fatal(err)
		}

		root, err := WorktreeRoot(sub)
		if err != nil {
			t.Fatalf("WorktreeRoot failed: %v", err)
		}
		if root != repoPath {
			t.Errorf("Expected %s, got %s", repoPath, root)
		}
	})
}
