// Package fileops provides small filesystem helpers shared by the bootstrap
// steps and the configuration layer.
//
// # Directory Operations
//
// EnsureDirectoryExists() creates directories with 0755 permissions and is a
// no-op when the directory already exists.
//
// EnsureWritableDir() builds on it: it refuses a path occupied by a regular
// file, creates the directory when missing, and verifies that files can be
// written inside it. Callers can run it any number of times on the same path:
//
//	created, err := fileops.EnsureWritableDir(filepath.Join(root, "logs"))
//	if err != nil {
//	    return fmt.Errorf("log directory: %w", err)
//	}
//
// # Paths
//
// ExpandPath() expands a leading "~/" to the user's home directory.
package fileops
