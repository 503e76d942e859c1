package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/dendra-file-organizer/internal/shell"
)

// NewShellCmd creates and returns the shell subcommand for the organizer CLI.
// It runs an interactive session against a fresh organizer.
func NewShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive organizer session",
		Long: `Start an interactive session against an in-memory organizer.

On a terminal the session offers completion for commands; piped input is
read one command per line, and lines starting with # are ignored. Type help
for the list of commands and exit to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			session := shell.New(e.org, cmd.OutOrStdout(), e.logger.Logger)
			return session.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
