package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dendra-file-organizer/internal/render"
)

// NewScanCmd creates and returns the scan subcommand for the organizer CLI.
// It mirrors the names in a real directory tree into an organizer.
func NewScanCmd(opts *options) *cobra.Command {
	var (
		foldersOnly bool
		depth       int
	)

	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Load folder and file names from a directory",
		Long: `Walk a directory tree and load its folder and file names into a fresh
organizer, then print the resulting tree and index statistics.

Only names are read, never file contents. Names containing characters the
organizer rejects are skipped, as are files whose name already appears in
another folder, since every filename is indexed once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res, err := loadFrom(e.org, args[0], e.logger.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %s, %s skipped\n", render.Summary(res.Folders, res.Files), render.Count(res.Skipped))
			fmt.Fprint(out, render.Tree(e.org.Tree(), e.org.Tree().Root(), render.TreeOptions{
				Color:     render.ColorEnabled(out),
				HideFiles: foldersOnly,
				MaxDepth:  depth,
			}))
			fmt.Fprintln(out, render.Stats(e.org.Statistics()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&foldersOnly, "folders-only", false, "Print folders only in the tree")
	cmd.Flags().IntVar(&depth, "depth", 0, "Folder levels to print in the tree (0 prints all)")

	return cmd
}
