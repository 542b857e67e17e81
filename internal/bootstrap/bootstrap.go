// Package bootstrap prepares a Python project for use.
//
// A run is a fixed sequence of steps driven by a Pipeline:
//
//  1. version check: the interpreter must be at least the minimum version
//  2. provision: the package manager synchronizes the dependency environment
//  3. editable install: the project is installed into that environment
//  4. log directory: the project's log directory is created if missing
//  5. completion notice: a human-readable summary is printed
//
// The first failing step ends the run. Its error is one of the types in
// errors.go, and ExitCode maps it to the process exit status.
package bootstrap

import (
	"context"
	"io"
	"os"

	"pybootstrap/internal/interpreter"
	"pybootstrap/internal/logging"
	"pybootstrap/internal/notice"
	"pybootstrap/internal/provision"
)

// Options wires a Bootstrapper to its collaborators.
type Options struct {
	Prober      interpreter.Prober
	Provisioner provision.Provisioner
	MinPython   string

	// ProjectDir is installed in editable mode.
	ProjectDir string
	// LogDir is the absolute log directory path.
	LogDir string

	// Out receives progress lines and the completion notice. Defaults to stdout.
	Out      io.Writer
	Renderer *notice.Renderer
	Logger   *logging.AppLogger
}

// Bootstrapper runs the bootstrap sequence.
type Bootstrapper struct {
	opts    Options
	version *VersionStep
}

// New returns a Bootstrapper. Missing Out, Renderer and Logger get defaults.
func New(opts Options) *Bootstrapper {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Renderer == nil {
		opts.Renderer = notice.NewRenderer("auto", opts.Out)
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}

	return &Bootstrapper{
		opts:    opts,
		version: &VersionStep{Prober: opts.Prober, Minimum: opts.MinPython},
	}
}

// Stages returns the full sequence in order.
func (b *Bootstrapper) Stages() []Stage {
	return []Stage{
		{Step: b.version, Reaches: StateVersionChecked},
		{Step: &SyncStep{Provisioner: b.opts.Provisioner}, Reaches: StateProvisioned},
		{Step: &InstallStep{Provisioner: b.opts.Provisioner, Path: b.opts.ProjectDir}, Reaches: StateInstalled},
		{Step: &LogDirStep{Path: b.opts.LogDir, Summary: b.Summary, Logger: b.opts.Logger}, Reaches: StateLogDirReady},
		{Step: &NoticeStep{Out: b.opts.Out, Renderer: b.opts.Renderer, Summary: b.Summary, Logger: b.opts.Logger}, Reaches: StateDone},
	}
}

// Run executes the full sequence.
func (b *Bootstrapper) Run(ctx context.Context) Result {
	return b.run(ctx, b.Stages())
}

// Check runs only the version check.
func (b *Bootstrapper) Check(ctx context.Context) Result {
	return b.run(ctx, b.Stages()[:1])
}

func (b *Bootstrapper) run(ctx context.Context, stages []Stage) Result {
	p := NewPipeline(b.opts.Logger, stages...)
	p.OnStepStart(func(step string) {
		io.WriteString(b.opts.Out, b.opts.Renderer.Step(step))
	})
	return p.Run(ctx)
}

// Summary describes the run so far.
func (b *Bootstrapper) Summary() notice.Summary {
	found := b.version.Found()
	return notice.Summary{
		Python:     found.Version,
		Executable: found.Executable,
		ProjectDir: b.opts.ProjectDir,
		LogDir:     b.opts.LogDir,
	}
}
