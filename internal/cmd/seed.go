package cmd

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dendra-file-organizer/internal/render"
	"github.com/dendrascience/dendra-file-organizer/organizer"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// NewSeedCmd creates and returns the seed subcommand for the organizer CLI.
// It fills an organizer with generated files to exercise the index.
func NewSeedCmd(opts *options) *cobra.Command {
	var (
		fileCount int
		seed      uint64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add generated files and report index statistics",
		Long: `Add a large number of generated files to a fresh organizer.

Files are placed in a YYYY/MM/DD folder hierarchy drawn from dates in 2024,
with a quarter of them one or two levels higher. Each file is named after a
UUID with a .json or .txt extension. The same --seed always produces the same
tree, which makes collision and rehash counts comparable between runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			start := time.Now()
			res, err := runSeed(cmd.OutOrStdout(), e.org, fileCount, seed, verbose)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s files in %s folders (%s)\n",
				render.Count(res.Files), render.Count(res.Folders), time.Since(start).Round(time.Millisecond))
			fmt.Fprintln(out, render.Stats(e.org.Statistics()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&fileCount, "count", "c", 10000, "Number of files to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report progress every 1,000 files")

	return cmd
}

func runSeed(w io.Writer, org *organizer.Organizer, fileCount int, seed uint64, verbose bool) (scanResult, error) {
	var res scanResult
	if fileCount < 0 {
		return res, fmt.Errorf("count must not be negative, got %d", fileCount)
	}

	var key [32]byte
	for i := range 8 {
		key[i] = byte(seed >> (8 * i))
	}
	source := rand.NewChaCha8(key)
	rng := rand.New(source)

	folders := make(map[string]struct{})
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for res.Files < fileCount {
		day := baseTime.AddDate(0, 0, rng.IntN(366))
		dir := path.Join(fmt.Sprintf("%04d", day.Year()), fmt.Sprintf("%02d", day.Month()), fmt.Sprintf("%02d", day.Day()))
		switch n := rng.IntN(100); {
		case n < 5:
			dir = path.Dir(path.Dir(dir))
		case n < 25:
			dir = path.Dir(dir)
		}

		id, err := uuid.NewRandomFromReader(source)
		if err != nil {
			return res, fmt.Errorf("generate name: %w", err)
		}
		ext := ".json"
		if rng.IntN(2) == 1 {
			ext = ".txt"
		}

		_, err = org.AddFile(id.String()+ext, dir)
		if errors.Is(err, util.ErrTableFull) {
			org.Rehash()
			_, err = org.AddFile(id.String()+ext, dir)
		}
		if err != nil {
			return res, err
		}
		folders[dir] = struct{}{}
		res.Files++

		if verbose && res.Files%1000 == 0 {
			fmt.Fprintf(w, "Added %s/%s files...\n", render.Count(res.Files), render.Count(fileCount))
		}
	}
	res.Folders = len(folders)
	return res, nil
}
