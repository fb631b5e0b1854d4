package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/aggregator"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/report"
)

var showChart string

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show every chart for a stored match",
	Long: `Apply the --filter descriptors to a stored match and print each chart
dataset as a table.

Example:
  rugbymetrics show 3fa2 --filter TEAM=OUR_TEAM --filter Time_Group=Q2`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	addMatchFlags(showCmd)
	showCmd.Flags().StringVar(&showChart, "chart", "", "only charts whose title contains this text")
}

func runShow(cmd *cobra.Command, args []string) error {
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
	printCharts(os.Stdout, m, set, showChart)
	return nil
}

// printCharts renders every dataset for the filtered events of m.
func printCharts(w io.Writer, m *matchView, set filter.Set, only string) {
	report.PrintMatchSummary(w, m.Summary)
	filtered := filter.Apply(m.Events, set, m.Ctx)
	fmt.Fprintf(w, "Filters: %s  |  Our team: %s  |  %d of %d events\n",
		set, strings.Join(m.Ctx.OurTeams, ", "), len(filtered), len(m.Events))

	only = strings.ToLower(only)
	for _, ds := range aggregator.All(filtered, m.Ctx) {
		if only != "" && !strings.Contains(strings.ToLower(ds.Title), only) {
			continue
		}
		report.PrintDataset(w, ds, &m.Info)
	}
}
