package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-rugby-metrics/internal/backend"
	"github.com/pable/go-rugby-metrics/internal/report"
	"github.com/pable/go-rugby-metrics/pkg/logger"
)

// fetch command flags.
var (
	// fetchURL overrides the configured backend base URL.
	fetchURL string
	// fetchList prints the backend's match listing instead of importing.
	fetchList bool
)

// fetchCmd downloads match events from the REST backend and imports them.
var fetchCmd = &cobra.Command{
	Use:   "fetch [match-id...]",
	Short: "Download matches from the event backend and import them",
	Long: `Fetches the event list and match info of each match id from the backend
(GET /api/matches/{id}/events and /api/matches/{id}/info) and stores them in
the local cache, exactly as 'import' does for files.

Examples:
  # See which matches the backend has
  rugbymetrics fetch --list

  # Import two matches
  rugbymetrics fetch 12 13`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "backend base URL (default from config, "+backend.DefaultURL+")")
	fetchCmd.Flags().BoolVar(&fetchList, "list", false, "list matches available on the backend")
}

func runFetch(cmd *cobra.Command, args []string) error {
	baseURL := fetchURL
	if baseURL == "" {
		baseURL = cfg.BackendURL
	}
	client := backend.NewClient(baseURL, time.Duration(cfg.BackendTimeoutSec)*time.Second)
	log := logger.Named("fetch")

	if fetchList {
		refs, err := client.ListMatches(cmd.Context())
		if err != nil {
			return fmt.Errorf("list backend matches: %w", err)
		}
		if len(refs) == 0 {
			fmt.Fprintln(os.Stdout, "The backend has no matches.")
			return nil
		}
		table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
		}))
		table.Header("ID", "DATE", "TEAM", "OPPONENT", "COMPETITION")
		for _, r := range refs {
			table.Append(r.ID, r.Date, r.Team, r.Opponent, r.Competition)
		}
		table.Render()
		return nil
	}

	if len(args) == 0 {
		return errors.New("give at least one match id, or --list")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var failed int
	for _, id := range args {
		log.Debug("fetching match", zap.String("url", client.Source(id)))
		p, err := client.FetchMatch(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "match %s: not found on backend\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "match %s: %v\n", id, err)
			}
			failed++
			continue
		}
		summary, err := ingest(db, p, client.Source(id))
		if err != nil {
			return err
		}
		report.PrintMatchSummary(os.Stdout, summary)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d matches could not be fetched", failed, len(args))
	}
	return nil
}
