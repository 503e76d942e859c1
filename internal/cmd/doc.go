// Package cmd provides the command-line interface implementation for the organizer.
//
// This package contains all the subcommand implementations for the organizer CLI.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command, command groups and shared flags
//   - shell: Interactive session over an in-memory organizer
//   - mount: FUSE view of an organizer, with optional Prometheus metrics
//   - demo: Scripted create, add, search and delete walkthrough
//   - seed: Generated files for exercising the hash index
//   - scan: Folder and file names loaded from a real directory
//   - validate: Tree and index consistency checking
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Every command builds its organizer the same way:
// configuration file first, then flag overrides, then optional sample data and
// directory contents.
package cmd
