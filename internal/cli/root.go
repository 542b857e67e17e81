package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pybootstrap/internal/bootstrap"
	"pybootstrap/internal/config"
	"pybootstrap/internal/interpreter"
	"pybootstrap/internal/logging"
	"pybootstrap/internal/notice"
	"pybootstrap/internal/provision"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// deps builds the collaborators of a bootstrap run. Tests replace them.
type deps struct {
	logger         *logging.AppLogger
	newProber      func(cfg *config.Config) interpreter.Prober
	newProvisioner func(cfg *config.Config, projectDir string, logger *logging.AppLogger) provision.Provisioner
}

func defaultDeps() *deps {
	return &deps{
		logger: logging.GetDefault(),
		newProber: func(cfg *config.Config) interpreter.Prober {
			return interpreter.NewCommandProber(cfg.Interpreters...)
		},
		newProvisioner: func(cfg *config.Config, projectDir string, logger *logging.AppLogger) provision.Provisioner {
			return provision.NewUV(cfg.Tool, cfg.SyncArgs, cfg.InstallArgs, projectDir, nil, logger)
		},
	}
}

type rootOptions struct {
	verbose bool
	cfgFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(d *deps) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pybootstrap",
		Short: "Prepare a Python project for development",
		Long: notice.TitleStyle.Render("pybootstrap") + notice.SubtitleStyle.Render(" - Prepare a Python project for development") + `

Running pybootstrap with no arguments performs, in order:
  1. checks that Python 3.10 or newer is on PATH
  2. provisions the project environment (uv sync)
  3. installs the project in editable mode (uv pip install -e)
  4. creates the logs directory next to the pybootstrap executable
  5. prints a completion notice

The first failing step stops the run. Its exit code is 1, or the package
manager's own exit code when provisioning or installation fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.cfgFile != "" {
				config.SetConfigFilePathOverride(opts.cfgFile)
			}
			d.logger.SetVerbose(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), d, false)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pybootstrap/config.yaml)")

	rootCmd.AddCommand(newCheckCommand(d))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// runBootstrap loads configuration, wires the bootstrapper and runs either the
// full sequence or only the version check.
func runBootstrap(ctx context.Context, stdout, stderr io.Writer, d *deps, checkOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	d.logger.DebugObject("config", cfg)

	projectDir, err := cfg.ProjectRoot()
	if err != nil {
		return err
	}
	logBase, err := cfg.LogBaseDir()
	if err != nil {
		return err
	}
	d.logger.Info("Resolved directories", "project", projectDir, "logs", cfg.LogDirPath(logBase))

	renderer := notice.NewRenderer(cfg.NoticeStyle, stdout)
	boot := bootstrap.New(bootstrap.Options{
		Prober:      d.newProber(cfg),
		Provisioner: d.newProvisioner(cfg, projectDir, d.logger),
		MinPython:   cfg.MinPython,
		ProjectDir:  projectDir,
		LogDir:      cfg.LogDirPath(logBase),
		Out:         stdout,
		Renderer:    renderer,
		Logger:      d.logger,
	})

	var res bootstrap.Result
	if checkOnly {
		res = boot.Check(ctx)
	} else {
		res = boot.Run(ctx)
	}

	if res.Err != nil {
		fmt.Fprint(stderr, renderer.Failure(res.FailedStep, res.Err))
		return &ExitError{Code: bootstrap.ExitCode(res.Err), Err: res.Err, Reported: true}
	}

	if checkOnly {
		fmt.Fprint(stdout, renderer.Passed(boot.Summary()))
	}
	return nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// errorHandler prints errors that were not already reported by the command.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// Execute runs the root command and exits the process with its status.
// This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(),
		fang.WithVersion(getVersionString()),
		fang.WithErrorHandler(errorHandler),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
