package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dave-shawley/ged-work/internal/lineage"
	"github.com/dave-shawley/ged-work/internal/names"
	"github.com/dave-shawley/ged-work/internal/normalize"
	"github.com/dave-shawley/ged-work/internal/outline"
	"github.com/spf13/cobra"
)

var buildOutput string
var buildPageMap string
var buildSeed int64

var buildCmd = &cobra.Command{
	Use:   "build <outline>",
	Short: "Expand a family outline into level-prefixed records",
	Long: `Build reads a YAML family outline and expands it into person, family,
source, and note records with generated identifiers and deterministic child
lineage codes. Without --output the records go to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		doc, err := outline.LoadFile(args[0])
		if err != nil {
			return err
		}

		seed := buildSeed
		if seed == 0 {
			seed = time.Now().Unix()
		}
		builder := lineage.NewBuilder(lineage.NewSequence(seed), names.SimpleParser{}, log)
		builder.Process(doc)

		if buildPageMap != "" {
			pages, err := readPageMap(buildPageMap, log)
			if err != nil {
				return err
			}
			builder.BackfillPages(pages)
		}

		var out io.Writer = cmd.OutOrStdout()
		if buildOutput != "" {
			f, err := os.Create(buildOutput)
			if err != nil {
				return fmt.Errorf("opening output: %w", err)
			}
			defer f.Close()
			out = f
		}
		if err := builder.Render(out); err != nil {
			return err
		}

		FormatBuildSummary(cmd.ErrOrStderr(),
			len(builder.Persons()), len(builder.Families()), buildOutput)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Destination file (default stdout)")
	buildCmd.Flags().StringVar(&buildPageMap, "page-map", "", "Page-map notation file for page backfill")
	buildCmd.Flags().Int64Var(&buildSeed, "seed", 0, "Identifier sequence seed (0 = current time)")
	rootCmd.AddCommand(buildCmd)
}

func readPageMap(path string, log *slog.Logger) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page map: %w", err)
	}
	defer f.Close()
	return normalize.ReadMapFile(f, log)
}
