package cmd

import (
	"fmt"
	"os"

	"github.com/dave-shawley/ged-work/internal/gedcom"
	"github.com/dave-shawley/ged-work/internal/normalize"
	"github.com/spf13/cobra"
)

var normalizeOutput string
var normalizePageMap string
var skipSourcePages bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize <records>",
	Short: "Repair and merge citations in a record file",
	Long: `Normalize parses a previously produced record file, propagates citation
page numbers within each person record, merges duplicate citations, and, when a
page map is supplied, recovers lineage codes from note text and backfills
missing pages. Without --output the file is validated and normalized in memory
only; structural anomalies are logged and never fail the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening records: %w", err)
		}
		db, err := gedcom.Parse(f)
		f.Close()
		if err != nil {
			return err
		}

		n := normalize.New(db, log)
		if !skipSourcePages {
			n.SetSourcePages()
		}
		n.RemoveDuplicateSources()
		if normalizePageMap != "" {
			n.AugmentIndiIDs()
			pages, err := readPageMap(normalizePageMap, log)
			if err != nil {
				return err
			}
			n.InsertPageNumbers(pages)
		}

		if normalizeOutput != "" {
			out, err := os.Create(normalizeOutput)
			if err != nil {
				return fmt.Errorf("opening output: %w", err)
			}
			defer out.Close()
			if err := db.Write(out); err != nil {
				return err
			}
		}

		FormatNormalizeSummary(cmd.ErrOrStderr(),
			db.RecordCount(), len(db.Roots()), normalizeOutput)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Destination file (default: validate only)")
	normalizeCmd.Flags().StringVar(&normalizePageMap, "page-map", "", "Page-map notation file for page recovery")
	normalizeCmd.Flags().BoolVar(&skipSourcePages, "skip-sources", false, "Skip the citation page propagation pass")
	rootCmd.AddCommand(normalizeCmd)
}
