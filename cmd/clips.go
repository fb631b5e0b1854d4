package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/playback"
	"github.com/pable/go-rugby-metrics/internal/report"
)

var clipSec float64

var clipsCmd = &cobra.Command{
	Use:   "clips <hash-prefix>",
	Short: "Print the video clips (start, duration) of the filtered events",
	Args:  cobra.ExactArgs(1),
	RunE:  runClips,
}

func init() {
	addMatchFlags(clipsCmd)
	clipsCmd.Flags().Float64Var(&clipSec, "clip-sec", playback.DefaultClipSec, "clip length for events without a duration")
}

func runClips(cmd *cobra.Command, args []string) error {
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
	pl := playback.New(filter.Apply(m.Events, set, m.Ctx), clipSec)
	if pl.Len() == 0 {
		fmt.Fprintln(os.Stdout, "No timed events match the filters.")
		return nil
	}
	if m.Info.VideoURL != "" {
		fmt.Fprintf(os.Stdout, "Video: %s\n", m.Info.VideoURL)
	}
	report.PrintClips(os.Stdout, pl.Clips())
	return nil
}

func clipsOf(events []model.Event) []model.Clip {
	return playback.New(events, clipSec).Clips()
}
