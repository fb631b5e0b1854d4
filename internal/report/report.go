package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/team"
	"github.com/pable/go-rugby-metrics/internal/timebucket"
)

func newTable(w io.Writer, rowAlign tw.Align) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: rowAlign},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	hash := s.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	fmt.Fprintf(w, "\n%s vs %s  |  Date: %s  |  Competition: %s  |  Events: %d (dropped %d)  |  Hash: %s\n\n",
		orDash(s.Team), orDash(s.Opponent), orDash(s.MatchDate), orDash(s.Competition),
		s.EventCount, s.DroppedCount, hash)
}

// PrintMatchList prints the stored matches, one per line.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	fmt.Fprintf(w, "%-14s  %-8s  %-10s  %-18s  %-18s  %6s  %s\n",
		"HASH", "MATCH", "DATE", "TEAM", "OPPONENT", "EVENTS", "COMPETITION")
	fmt.Fprintf(w, "%-14s  %-8s  %-10s  %-18s  %-18s  %6s  %s\n",
		"──────────────", "────────", "──────────", "──────────────────", "──────────────────", "──────", "───────────")
	for _, m := range matches {
		hash := m.Hash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		fmt.Fprintf(w, "%-14s  %-8s  %-10s  %-18s  %-18s  %6d  %s\n",
			hash, orDash(m.MatchID), orDash(m.MatchDate), orDash(m.Team), orDash(m.Opponent),
			m.EventCount, orDash(m.Competition))
	}
}

// PrintDataset prints one chart dataset as a table: one row per label, one
// column per series. Per-side series are titled with the team names from info
// when known.
func PrintDataset(w io.Writer, ds model.Dataset, info *model.MatchInfo) {
	fmt.Fprintf(w, "\n%s\n", ds.Title)
	if len(ds.Labels) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	header := make([]any, 0, len(ds.Series)+1)
	header = append(header, "")
	for _, s := range ds.Series {
		header = append(header, team.Label(s.Name, info))
	}

	table := newTable(w, tw.AlignRight)
	table.Header(header...)
	for i, label := range ds.Labels {
		row := make([]any, 0, len(ds.Series)+1)
		row = append(row, label)
		for _, s := range ds.Series {
			row = append(row, FormatValue(s.Values[i]))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintEvents prints the event table in the order given.
func PrintEvents(w io.Writer, events []model.Event, ctx filter.Context) {
	table := newTable(w, tw.AlignLeft)
	table.Header("ID", "TIME", "WINDOW", "TYPE", "TEAM", "SIDE", "PLAYERS")
	for i := range events {
		ev := &events[i]
		clock := "—"
		if ev.HasTimestamp {
			clock = FormatClock(ev.TimestampSec)
		}
		table.Append(
			ev.ID,
			clock,
			timebucket.ForEvent(ev, ctx.ExtraTime),
			ev.Type,
			orDash(ev.Team),
			team.SideOf(ev, ctx.OurTeams).String(),
			orDash(strings.Join(ev.Players, ",")),
		)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d events)\n", len(events))
}

// PrintTeams prints team labels by event volume, marking the ones taken as ours.
func PrintTeams(w io.Writer, counts []team.Count, ours []string) {
	table := newTable(w, tw.AlignRight)
	table.Header(" ", "TEAM", "EVENTS")
	for _, c := range counts {
		marker := " "
		if team.IsOurTeam(c.Team, ours) {
			marker = ">"
		}
		table.Append(marker, c.Team, strconv.Itoa(c.Events))
	}
	table.Render()
}

// PrintClips prints playback clips.
func PrintClips(w io.Writer, clips []model.Clip) {
	table := newTable(w, tw.AlignRight)
	table.Header("#", "EVENT", "TYPE", "START", "START_SEC", "DURATION_SEC")
	for i, c := range clips {
		table.Append(strconv.Itoa(i+1), c.EventID, c.EventType, FormatClock(c.StartSec),
			FormatValue(c.StartSec), FormatValue(c.DurationSec))
	}
	table.Render()
}

// FormatClock renders seconds as m:ss, or h:mm:ss past the hour.
func FormatClock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatValue prints whole numbers without decimals and others with one.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// PrintRows prints a raw query result.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w, tw.AlignRight)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
