package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/report"
	"github.com/pable/go-rugby-metrics/internal/team"
)

var teamsCmd = &cobra.Command{
	Use:   "teams <hash-prefix>",
	Short: "Show team labels by event volume and which one is treated as ours",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeams,
}

func init() {
	addMatchFlags(teamsCmd)
}

func runTeams(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}
	counts := team.Counts(m.Events)
	if len(counts) == 0 {
		fmt.Fprintln(os.Stdout, "No event carries a team label.")
		return nil
	}
	report.PrintTeams(os.Stdout, counts, m.Ctx.OurTeams)
	fmt.Fprintf(os.Stdout, "\nOur team: %s\n", strings.Join(m.Ctx.OurTeams, ", "))
	return nil
}
