package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the match cache",
	Long: `Run an arbitrary SQL query against the match cache and print results as a table.

Schema overview:
  matches(hash, match_id, team, opponent, match_date, competition, video_url,
    source, event_count, dropped_count, import_id, imported_at)
  events(match_hash, event_id, event_type, timestamp_sec, duration_sec, team,
    payload)

payload is the raw event record as JSON. Use json_extract to reach descriptors:
  SELECT event_id, json_extract(payload, '$.extra_data.ADVANCE') FROM events
  WHERE event_type = 'TACKLE'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRows(os.Stdout, cols, rows)
	return nil
}
