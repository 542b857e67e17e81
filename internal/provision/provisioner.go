package provision

import (
	"context"
	"fmt"
	"path/filepath"

	"pybootstrap/internal/logging"
)

// Provisioner materializes a project's dependency environment.
type Provisioner interface {
	// Sync resolves and installs the declared dependencies.
	Sync(ctx context.Context) error
	// InstallEditable installs the project at path in editable mode.
	InstallEditable(ctx context.Context, path string) error
}

// UV drives a uv-compatible tool.
type UV struct {
	Tool        string
	SyncArgs    []string
	InstallArgs []string
	// ProjectDir is the working directory for every invocation.
	ProjectDir string

	runner Runner
	logger *logging.AppLogger
}

// NewUV builds a UV provisioner. A nil runner means NewExecRunner() and a
// nil logger means the package default.
func NewUV(tool string, syncArgs, installArgs []string, projectDir string, runner Runner, logger *logging.AppLogger) *UV {
	if runner == nil {
		runner = NewExecRunner()
	}
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &UV{
		Tool:        tool,
		SyncArgs:    syncArgs,
		InstallArgs: installArgs,
		ProjectDir:  projectDir,
		runner:      runner,
		logger:      logger,
	}
}

// Sync runs "<tool> <sync args...>" in the project directory.
func (u *UV) Sync(ctx context.Context) error {
	return u.run(ctx, u.SyncArgs)
}

// InstallEditable runs "<tool> <install args...> <path>" in the project directory.
func (u *UV) InstallEditable(ctx context.Context, path string) error {
	if path == "" {
		return fmt.Errorf("install path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve install path: %w", err)
	}

	args := make([]string, 0, len(u.InstallArgs)+1)
	args = append(args, u.InstallArgs...)
	args = append(args, abs)
	return u.run(ctx, args)
}

func (u *UV) run(ctx context.Context, args []string) error {
	cmd := Command{Name: u.Tool, Args: args, Dir: u.ProjectDir}
	u.logger.Info("Running", "command", cmd.String(), "dir", cmd.Dir)

	if err := u.runner.Run(ctx, cmd); err != nil {
		u.logger.Debug("Command failed", "command", cmd.String(), "error", err)
		return err
	}
	return nil
}
