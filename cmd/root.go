package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dave-shawley/ged-work/internal/version"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ged-work",
	Short: "Genealogy tooling for level-prefixed lineage records",
	Long: `ged-work converts nested family-outline documents into the level-prefixed,
pointer-linked record format used for genealogy interchange, and post-processes
previously produced record files: citation page propagation, duplicate-citation
merging, and page-number recovery from a compact map notation.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("ged-work %s\n", version.String()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger handed to the normalizer and builder. All
// diagnostics go to stderr so record output on stdout stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
