package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/loader"
	"github.com/pable/go-rugby-metrics/internal/report"
)

var importCmd = &cobra.Command{
	Use:   "import <events.json> [more...]",
	Short: "Import match event files into the local cache",
	Long: `Load one or more match event payloads and store them in the local cache.

A payload is a JSON array of event records, or an object with an "events"
array and optional "match_info". Files ending in .gz, .zst or .bz2 are
decompressed first. Records without an id or event type are dropped and
counted. Re-importing the same content replaces the stored copy.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, path := range args {
		fmt.Fprintf(os.Stdout, "Importing %s...\n", path)
		p, err := loader.ReadFile(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		summary, err := ingest(db, p, "file:"+abs)
		if err != nil {
			return err
		}
		report.PrintMatchSummary(os.Stdout, summary)
	}
	return nil
}
