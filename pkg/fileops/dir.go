package fileops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when a path that must be a directory is a file.
var ErrNotDirectory = errors.New("path exists but is not a directory")

// ExpandPath expands a leading "~/" to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/projects/app")
//	// Returns something like "/home/user/projects/app"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// EnsureDirectoryExists creates a directory and all necessary parent
// directories. It succeeds without changes when the directory already exists.
//
// The function sets directory permissions to 0755 (readable and executable by all,
// writable by owner only).
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// EnsureWritableDir makes sure dirPath exists as a writable directory.
//
// Parameters:
//   - dirPath: Directory to create or verify
//
// Returns:
//   - bool: true if the directory was created by this call
//   - error: ErrNotDirectory, creation errors, or write-test errors
//
// The function:
//   - Returns ErrNotDirectory when a non-directory already occupies the path
//   - Creates missing directories (and parents) with 0755 permissions
//   - Tests write permissions by creating and removing a temporary file
//
// Calling it repeatedly on the same path is safe.
func EnsureWritableDir(dirPath string) (bool, error) {
	trimmed := strings.TrimSpace(dirPath)
	if trimmed == "" {
		return false, fmt.Errorf("directory path cannot be empty")
	}
	path := filepath.Clean(ExpandPath(trimmed))

	created := false
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s", ErrNotDirectory, path)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := EnsureDirectoryExists(path); err != nil {
			return false, err
		}
		created = true
	default:
		return false, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if err := ValidateDirectoryWritable(path); err != nil {
		return created, err
	}
	return created, nil
}

// ValidateDirectoryWritable checks that files can be created in dirPath.
// The directory must already exist.
func ValidateDirectoryWritable(dirPath string) error {
	f, err := os.CreateTemp(dirPath, ".fileops-test-*")
	if err != nil {
		return fmt.Errorf("no write permission in directory: %w", err)
	}
	name := f.Name()
	f.Close()

	// Cleanup failure leaves a stray file but the directory is usable.
	_ = os.Remove(name)
	return nil
}
