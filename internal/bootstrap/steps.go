package bootstrap

import (
	"context"
	"fmt"
	"io"

	"pybootstrap/internal/interpreter"
	"pybootstrap/internal/logging"
	"pybootstrap/internal/notice"
	"pybootstrap/internal/provision"
	"pybootstrap/internal/version"
	"pybootstrap/pkg/fileops"
)

// VersionStep checks that the interpreter meets the minimum version.
type VersionStep struct {
	Prober  interpreter.Prober
	Minimum string

	found interpreter.Interpreter
}

func (s *VersionStep) Name() string { return "version check" }

func (s *VersionStep) Run(ctx context.Context) error {
	info, err := s.Prober.Probe(ctx)
	if err != nil {
		return &InterpreterError{Err: err}
	}

	ok, err := version.AtLeast(info.Version, s.Minimum)
	if err != nil {
		return &InterpreterError{Err: err}
	}
	if !ok {
		return &VersionTooLowError{Required: s.Minimum, Actual: info.Version}
	}

	s.found = info
	return nil
}

// Found returns the interpreter accepted by the last successful Run.
func (s *VersionStep) Found() interpreter.Interpreter {
	return s.found
}

// SyncStep provisions the dependency environment.
type SyncStep struct {
	Provisioner provision.Provisioner
}

func (s *SyncStep) Name() string { return "provision" }

func (s *SyncStep) Run(ctx context.Context) error {
	if err := s.Provisioner.Sync(ctx); err != nil {
		return &ProvisioningError{Code: toolExitCode(err), Err: err}
	}
	return nil
}

// InstallStep installs the project at Path in editable mode.
type InstallStep struct {
	Provisioner provision.Provisioner
	Path        string
}

func (s *InstallStep) Name() string { return "editable install" }

func (s *InstallStep) Run(ctx context.Context) error {
	if err := s.Provisioner.InstallEditable(ctx, s.Path); err != nil {
		return &InstallError{Code: toolExitCode(err), Err: err}
	}
	return nil
}

// LogDirStep ensures the log directory exists and records the run in it.
type LogDirStep struct {
	Path string
	// Summary, when set, is appended to the run record in Path.
	Summary func() notice.Summary
	Logger  *logging.AppLogger
}

func (s *LogDirStep) Name() string { return "log directory" }

func (s *LogDirStep) Run(_ context.Context) error {
	created, err := fileops.EnsureWritableDir(s.Path)
	if err != nil {
		return &FilesystemError{Path: s.Path, Err: err}
	}
	s.Logger.Info("Log directory ready", "path", s.Path, "created", created)

	if s.Summary != nil {
		writeRunRecord(s.Path, s.Summary(), s.Logger)
	}
	return nil
}

// NoticeStep prints the completion notice.
type NoticeStep struct {
	Out      io.Writer
	Renderer *notice.Renderer
	Summary  func() notice.Summary
	Logger   *logging.AppLogger
}

func (s *NoticeStep) Name() string { return "completion notice" }

func (s *NoticeStep) Run(_ context.Context) error {
	summary := s.Summary()

	text, err := s.Renderer.Success(summary)
	if err != nil {
		// The environment is ready; fall back to the raw markdown.
		s.Logger.Warn("Rendering completion notice failed", "error", err)
		text = notice.SuccessMarkdown(summary)
	}

	if _, err := io.WriteString(s.Out, text); err != nil {
		return fmt.Errorf("failed to write completion notice: %w", err)
	}
	return nil
}
