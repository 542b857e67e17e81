package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	return path
}

func TestEnsureDirectoryExists(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("create nested directories", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "nested", "deep", "directory")

		if err := EnsureDirectoryExists(dirPath); err != nil {
			t.Fatalf("EnsureDirectoryExists failed: %v", err)
		}

		info, err := os.Stat(dirPath)
		if err != nil {
			t.Fatalf("Nested directory was not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("Created nested path is not a directory")
		}
	})

	t.Run("directory already exists", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "existing_dir")
		if err := os.Mkdir(dirPath, 0755); err != nil {
			t.Fatalf("Failed to create initial directory: %v", err)
		}

		if err := EnsureDirectoryExists(dirPath); err != nil {
			t.Errorf("EnsureDirectoryExists failed on existing directory: %v", err)
		}
	})

	t.Run("file exists with same name", func(t *testing.T) {
		filePath := createTestFile(t, tempDir, "file_blocking_dir", "content")

		if err := EnsureDirectoryExists(filePath); err == nil {
			t.Error("Expected error when file exists with same name as directory")
		}
	})
}

func TestEnsureWritableDir(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("creates missing directory", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "logs")

		created, err := EnsureWritableDir(dirPath)
		if err != nil {
			t.Fatalf("EnsureWritableDir failed: %v", err)
		}
		if !created {
			t.Error("Expected created=true for a new directory")
		}
		if info, err := os.Stat(dirPath); err != nil || !info.IsDir() {
			t.Fatalf("Directory was not created: %v", err)
		}
	})

	t.Run("idempotent on second call", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "again")

		if _, err := EnsureWritableDir(dirPath); err != nil {
			t.Fatalf("first call failed: %v", err)
		}
		created, err := EnsureWritableDir(dirPath)
		if err != nil {
			t.Fatalf("second call failed: %v", err)
		}
		if created {
			t.Error("Expected created=false when directory already exists")
		}
	})

	t.Run("leaves no probe file behind", func(t *testing.T) {
		dirPath := filepath.Join(tempDir, "clean")

		if _, err := EnsureWritableDir(dirPath); err != nil {
			t.Fatalf("EnsureWritableDir failed: %v", err)
		}
		entries, err := os.ReadDir(dirPath)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected empty directory, found %d entries", len(entries))
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		filePath := createTestFile(t, tempDir, "not_a_dir", "content")

		_, err := EnsureWritableDir(filePath)
		if !errors.Is(err, ErrNotDirectory) {
			t.Errorf("Expected ErrNotDirectory, got %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := EnsureWritableDir("  "); err == nil {
			t.Error("Expected error for empty path")
		}
	})

	t.Run("read-only parent", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission bits are not enforced on windows")
		}
		if os.Getuid() == 0 {
			t.Skip("Skipping test as root user")
		}

		parent := filepath.Join(tempDir, "readonly")
		if err := os.Mkdir(parent, 0555); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(parent, 0755) })

		if _, err := EnsureWritableDir(filepath.Join(parent, "logs")); err == nil {
			t.Error("Expected error creating a directory under a read-only parent")
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Cannot get home directory: %v", err)
	}

	if got := ExpandPath("~/project"); got != filepath.Join(home, "project") {
		t.Errorf("Expected expansion under home, got %s", got)
	}
	if got := ExpandPath("/abs/project"); got != "/abs/project" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}
