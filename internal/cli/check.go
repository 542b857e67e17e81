package cli

import "github.com/spf13/cobra"

func newCheckCommand(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Only check the Python interpreter version",
		Long: `Locate the Python interpreter on PATH and verify that it meets the
minimum version. Nothing is installed and no directory is created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), d, true)
		},
	}
}
