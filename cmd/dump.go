package cmd

import (
	"fmt"
	"os"

	"github.com/dave-shawley/ged-work/internal/gedcom"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var dumpDebug bool

var dumpCmd = &cobra.Command{
	Use:   "dump <records>",
	Short: "Show the structure of a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening records: %w", err)
		}
		defer f.Close()

		db, err := gedcom.Parse(f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, root := range db.Roots() {
			FormatRootLine(out, root.Tag, root.Xref, root.NodeCount())
		}
		FormatNormalizeSummary(cmd.ErrOrStderr(), db.RecordCount(), len(db.Roots()), "")

		if dumpDebug {
			spew.Fdump(out, db.Roots())
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpDebug, "debug", false, "Dump the full tree structure")
	rootCmd.AddCommand(dumpCmd)
}
