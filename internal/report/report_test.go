package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-rugby-metrics/internal/aggregator"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
)

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{
		0:      "0:00",
		59.9:   "0:59",
		125:    "2:05",
		3723:   "1:02:03",
		-10:    "0:00",
		4800.5: "1:20:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Errorf("FormatClock(%v): want %q, got %q", in, want, got)
		}
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(5); got != "5" {
		t.Errorf("got %q", got)
	}
	if got := FormatValue(66.666); got != "66.7" {
		t.Errorf("got %q", got)
	}
}

func TestPrintDataset_TeamNamesAndEmpty(t *testing.T) {
	ds := model.Dataset{
		Title:  "Penalties by cause",
		Labels: []string{"OFFSIDE"},
		Series: []model.Series{
			{Name: aggregator.SeriesOurs, Values: []float64{2}},
			{Name: aggregator.SeriesOpponent, Values: []float64{1}},
		},
	}
	var buf bytes.Buffer
	PrintDataset(&buf, ds, &model.MatchInfo{Team: "Foxes", Opponent: "Wolves"})
	out := buf.String()
	for _, want := range []string{"Penalties by cause", "OFFSIDE", "FOXES", "WOLVES"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintDataset(&buf, model.Dataset{Title: "Empty", Labels: []string{}, Series: []model.Series{}}, nil)
	if !strings.Contains(buf.String(), "(no data)") {
		t.Errorf("got %q", buf.String())
	}
}

func TestPrintEvents(t *testing.T) {
	events := []model.Event{
		{ID: "1", Type: "TACKLE", Team: "Foxes", TimestampSec: 125, HasTimestamp: true, Players: []string{"7", "8"}},
		{ID: "2", Type: "SCRUM"},
	}
	var buf bytes.Buffer
	PrintEvents(&buf, events, filter.Context{OurTeams: []string{"Foxes"}})
	out := buf.String()
	for _, want := range []string{"2:05", "TACKLE", "OUR_TEAM", "7,8", "(2 events)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMatchList(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchList(&buf, []model.MatchSummary{
		{Hash: "0123456789abcdef", MatchID: "12", Team: "Foxes", EventCount: 42},
	})
	out := buf.String()
	if !strings.Contains(out, "0123456789ab ") || strings.Contains(out, "0123456789abc") {
		t.Errorf("hash should be cut to 12 chars:\n%s", out)
	}
	if !strings.Contains(out, "42") || !strings.Contains(out, "Foxes") {
		t.Errorf("missing fields:\n%s", out)
	}
}

func TestPrintRows(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"event_type"}, nil)
	if strings.TrimSpace(buf.String()) != "(no rows)" {
		t.Errorf("got %q", buf.String())
	}
	buf.Reset()
	PrintRows(&buf, []string{"event_type", "n"}, [][]string{{"TACKLE", "3"}, {"SCRUM", "NULL"}})
	if !strings.Contains(buf.String(), "(2 rows)") || !strings.Contains(buf.String(), "TACKLE") {
		t.Errorf("got:\n%s", buf.String())
	}
}
