package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/report"
)

var eventsCmd = &cobra.Command{
	Use:   "events <hash-prefix>",
	Short: "List the filtered events of a stored match in time order",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

func init() {
	addMatchFlags(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
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
	report.PrintEvents(os.Stdout, filter.Apply(m.Events, set, m.Ctx), m.Ctx)
	return nil
}
