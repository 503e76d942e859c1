package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dendrascience/dendra-file-organizer/internal/render"
	"github.com/dendrascience/dendra-file-organizer/organizer"
)

// NewDemoCmd creates and returns the demo subcommand for the organizer CLI.
// It walks through a short create, add, search and delete session.
func NewDemoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a short scripted session and print every step",
		Long: `Run a short scripted session against a fresh organizer.

The session creates Documents/Assignments and Music/Rock, adds project.pdf
and song1.mp3, finds project.pdf, deletes it, shows that it is gone, and
finishes with the folder tree and index statistics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			runDemo(cmd.OutOrStdout(), e.org)
			return nil
		},
	}
}

type demoStep struct {
	title string
	run   func(org *organizer.Organizer) (string, error)
}

var demoSteps = []demoStep{
	{"create folder Documents/Assignments", func(org *organizer.Organizer) (string, error) {
		f, err := org.CreateFolder("Documents/Assignments")
		return "Created folder " + f.Path, err
	}},
	{"create folder Music/Rock", func(org *organizer.Organizer) (string, error) {
		f, err := org.CreateFolder("Music/Rock")
		return "Created folder " + f.Path, err
	}},
	{"add project.pdf to Documents/Assignments", func(org *organizer.Organizer) (string, error) {
		return org.AddFile("project.pdf", "Documents/Assignments")
	}},
	{"add song1.mp3 to Music/Rock", func(org *organizer.Organizer) (string, error) {
		return org.AddFile("song1.mp3", "Music/Rock")
	}},
	{"search project.pdf", searchStep("project.pdf")},
	{"delete project.pdf", func(org *organizer.Organizer) (string, error) {
		return org.DeleteFile("project.pdf")
	}},
	{"search project.pdf", searchStep("project.pdf")},
	{"list Documents/Assignments", func(org *organizer.Organizer) (string, error) {
		l, err := org.ListFolder("Documents/Assignments")
		if err != nil {
			return "", err
		}
		return l.Path + "\n" + render.Listing(l, false), nil
	}},
}

func searchStep(name string) func(org *organizer.Organizer) (string, error) {
	return func(org *organizer.Organizer) (string, error) {
		path, err := org.SearchFile(name)
		return organizer.FoundMessage(name, path), err
	}
}

func runDemo(w io.Writer, org *organizer.Organizer) {
	for i, step := range demoSteps {
		msg, err := step.run(org)
		fmt.Fprintf(w, "[%d] %s\n", i+1, step.title)
		fmt.Fprintf(w, "    %s\n", indent(organizer.Message(msg, err)))
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, render.Tree(org.Tree(), org.Tree().Root(), render.TreeOptions{}))
	fmt.Fprintln(w)
	fmt.Fprintln(w, render.Stats(org.Statistics()))
}

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n    ")
}
