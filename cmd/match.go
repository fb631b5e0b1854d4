package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/loader"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/storage"
	"github.com/pable/go-rugby-metrics/pkg/logger"
)

// Flags shared by every command that reads one stored match.
var (
	filterFlags  []string
	ourTeamFlags []string
	extraTime    bool
)

func addMatchFlags(c *cobra.Command) {
	c.Flags().StringArrayVar(&filterFlags, "filter", nil, "descriptor filter KEY=VALUE (repeatable, all must match)")
	c.Flags().StringSliceVar(&ourTeamFlags, "our-team", nil, "team label(s) to treat as ours (default: most active team)")
	c.Flags().BoolVar(&extraTime, "extra-time", false, "report events past 80' in their own bucket")
}

// matchView is one stored match, normalized and ready to filter.
type matchView struct {
	Summary model.MatchSummary
	Info    model.MatchInfo
	Events  []model.Event
	Ctx     filter.Context
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// loadMatch reads a match by hash prefix or backend match id and normalizes
// its stored records.
func loadMatch(db *storage.DB, prefix string) (*matchView, error) {
	summary, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		return nil, fmt.Errorf("no match found with hash prefix or id %q", prefix)
	}
	recs, err := db.GetEventRecords(summary.Hash)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	res := event.Normalize(recs)
	logDropped(summary.Hash, res)

	ours := ourTeamFlags
	if len(ours) == 0 {
		ours = cfg.OurTeams
	}
	return &matchView{
		Summary: *summary,
		Info:    summary.Info(),
		Events:  res.Events,
		Ctx:     filter.NewContext(res.Events, ours, extraTime || cfg.ExtraTime),
	}, nil
}

// activeFilters parses the --filter flags.
func activeFilters() (filter.Set, error) {
	return filter.ParseAll(filterFlags)
}

// ingest normalizes a decoded payload and stores it. An already stored hash is
// replaced.
func ingest(db *storage.DB, p *loader.Payload, source string) (model.MatchSummary, error) {
	log := logger.Named("import")
	res := event.Normalize(p.Records)
	logDropped(p.Hash, res)

	summary := model.MatchSummary{
		Hash:         p.Hash,
		MatchID:      p.Info.MatchID,
		Team:         p.Info.Team,
		Opponent:     p.Info.Opponent,
		MatchDate:    p.Info.Date,
		Competition:  p.Info.Competition,
		VideoURL:     p.Info.VideoURL,
		Source:       source,
		DroppedCount: res.Dropped(),
	}
	exists, err := db.MatchExists(p.Hash)
	if err != nil {
		return summary, fmt.Errorf("check match: %w", err)
	}
	saved, err := db.SaveMatch(summary, res.Events)
	if err != nil {
		return summary, fmt.Errorf("save match: %w", err)
	}
	log.Info("match stored",
		zap.String("hash", shortHash(saved.Hash)),
		zap.String("source", source),
		zap.Int("events", saved.EventCount),
		zap.Bool("replaced", exists),
		zap.String("import_id", saved.ImportID),
	)
	return saved, nil
}

func logDropped(hash string, res event.Result) {
	if res.Dropped() == 0 {
		return
	}
	log := logger.Named("normalize")
	log.Warn("dropped invalid event records",
		zap.String("hash", shortHash(hash)),
		zap.Int("count", res.Dropped()),
	)
	for _, inv := range res.Invalid {
		log.Debug("invalid record",
			zap.Int("index", inv.Index),
			zap.String("id", inv.ID),
			zap.String("reason", inv.Reason),
		)
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
