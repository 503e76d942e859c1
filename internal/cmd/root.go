package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/dendra-file-organizer/version"
)

// NewRootCmd creates and returns the root cobra command for the organizer CLI.
// It sets up all subcommands, command groups, and the flags shared by them.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "organizer",
		Short: "organizer - An in-memory folder tree with a hashed filename index",
		Long: `organizer keeps a folder hierarchy in memory and indexes every file by name
in an open-addressing hash table, so any file can be located without walking
the tree.

Use subcommands to work with an organizer:
  - shell: Interactive session (cd, ls, add, rm, find, tree, stats, ...)
  - mount: Expose the organizer as a FUSE filesystem
  - demo: Run the reference scenario step by step
  - seed: Add many generated files and report index statistics
  - scan: Load folder and file names from a real directory
  - validate: Check that the tree and the index agree`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	flags.BoolVar(&opts.sample, "sample", false, "Load the sample folders and files on start")
	flags.StringVar(&opts.from, "from", "", "Load folder and file names from a directory on start")
	flags.StringVar(&opts.probing, "probing", "", "Probing policy for the index (linear or quadratic)")
	flags.IntVar(&opts.capacity, "capacity", 0, "Initial index capacity (overrides the config file)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	groupOrganizer := "organizer"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupOrganizer,
		Title: "Organizer Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	shellCmd := NewShellCmd(opts)
	mountCmd := NewMountCmd(opts)
	demoCmd := NewDemoCmd(opts)
	seedCmd := NewSeedCmd(opts)
	scanCmd := NewScanCmd(opts)
	validateCmd := NewValidateCmd(opts)

	shellCmd.GroupID = groupOrganizer
	mountCmd.GroupID = groupOrganizer
	demoCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	scanCmd.GroupID = groupUtilities
	validateCmd.GroupID = groupUtilities

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(validateCmd)

	return rootCmd
}
