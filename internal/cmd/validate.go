package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the organizer CLI.
// It builds an organizer and checks the tree and the index against each other.
func NewValidateCmd(opts *options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the folder tree and the filename index agree",
		Long: `Build an organizer from --sample and/or --from, then sweep both structures:
every file in the tree must have an index entry pointing back at its folder,
every live index entry must name a file its folder holds, and the counts must
match. Exits with a non-zero status when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			stats := e.org.Statistics()
			if verbose {
				fmt.Fprintf(out, "Validating %d folders and %d files\n", stats.FolderCount, stats.FileCount)
			}

			problems := e.org.Check()
			for _, p := range problems {
				fmt.Fprintf(out, "  - %v\n", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("validation failed: %d problems", len(problems))
			}
			fmt.Fprintf(out, "OK: %d folders, %d files, %d index entries\n",
				stats.FolderCount, stats.FileCount, stats.TableLiveCount)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}
