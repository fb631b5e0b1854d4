package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/aggregator"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
)

var exportOut string

// chartExport is the JSON document handed to the dashboard front-end.
type chartExport struct {
	Hash       string                   `json:"hash"`
	Match      model.MatchInfo          `json:"match_info"`
	Filters    []model.FilterDescriptor `json:"filters"`
	OurTeams   []string                 `json:"our_teams"`
	ExtraTime  bool                     `json:"extra_time"`
	EventCount int                      `json:"event_count"`
	MatchCount int                      `json:"matched_event_count"`
	Datasets   []model.Dataset          `json:"datasets"`
	Clips      []model.Clip             `json:"clips"`
}

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix>",
	Short: "Export the chart datasets of a match as JSON",
	Long: `Apply the --filter descriptors to a stored match and write every chart
dataset as JSON. Each dataset has a title, a label axis and one or more
series of values aligned with the labels.

Example:
  rugbymetrics export 3fa2 --filter TEAM=OUR_TEAM --out charts.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addMatchFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	set, err := activeFilters()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}
	doc := buildExport(m, set)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if exportOut == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	return nil
}

func buildExport(m *matchView, set filter.Set) chartExport {
	filtered := filter.Apply(m.Events, set, m.Ctx)
	filters := []model.FilterDescriptor(set)
	if filters == nil {
		filters = []model.FilterDescriptor{}
	}
	return chartExport{
		Hash:       m.Summary.Hash,
		Match:      m.Info,
		Filters:    filters,
		OurTeams:   m.Ctx.OurTeams,
		ExtraTime:  m.Ctx.ExtraTime,
		EventCount: len(m.Events),
		MatchCount: len(filtered),
		Datasets:   aggregator.All(filtered, m.Ctx),
		Clips:      clipsOf(filtered),
	}
}
