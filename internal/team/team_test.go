package team

import (
	"testing"

	"github.com/pable/go-rugby-metrics/internal/model"
)

func ev(id, team string) model.Event {
	return model.Event{ID: id, Type: "TACKLE", Team: team, Fields: map[string]any{"team": team}}
}

func TestDetectOurTeams_TieBreaksOnFirstSeen(t *testing.T) {
	events := []model.Event{ev("1", "Foxes"), ev("2", "Wolves")}
	got := DetectOurTeams(events)
	if len(got) != 1 || got[0] != "Foxes" {
		t.Fatalf("want [Foxes], got %v", got)
	}
}

func TestCounts_StableOnTies(t *testing.T) {
	events := []model.Event{
		ev("1", "Sharks"), ev("2", "Foxes"), ev("3", "Wolves"),
		ev("4", "Wolves"), ev("5", "Foxes"), ev("6", "Bulls"),
	}
	got := Counts(events)
	want := []Count{{"Foxes", 2}, {"Wolves", 2}, {"Sharks", 1}, {"Bulls", 1}}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestDetectOurTeams_MostActiveWins(t *testing.T) {
	events := []model.Event{
		ev("1", "Foxes"),
		ev("2", "Wolves"),
		ev("3", " wolves "),
		ev("4", "Wolves"),
	}
	got := DetectOurTeams(events)
	if len(got) != 1 || got[0] != "Wolves" {
		t.Fatalf("want [Wolves], got %v", got)
	}
}

func TestDetectOurTeams_Deterministic(t *testing.T) {
	events := []model.Event{ev("1", "A"), ev("2", "B"), ev("3", "C"), ev("4", "B"), ev("5", "C")}
	first := DetectOurTeams(events)
	for i := 0; i < 20; i++ {
		again := DetectOurTeams(events)
		if len(again) != len(first) || again[0] != first[0] {
			t.Fatalf("run %d: %v != %v", i, again, first)
		}
	}
	if first[0] != "B" {
		t.Errorf("B and C tie at 2, B seen first: got %v", first)
	}
}

func TestDetectOurTeams_NoTeams(t *testing.T) {
	got := DetectOurTeams([]model.Event{{ID: "1", Type: "TACKLE"}})
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", got)
	}
}

func TestDetectOurTeams_SkipsReservedOpponentLabel(t *testing.T) {
	events := []model.Event{ev("1", "OPPONENT"), ev("2", "OPPONENT"), ev("3", "Foxes")}
	got := DetectOurTeams(events)
	if len(got) != 1 || got[0] != "Foxes" {
		t.Fatalf("want [Foxes], got %v", got)
	}
}

func TestIsOurTeam_Normalized(t *testing.T) {
	ours := []string{"Club  Atlético "}
	if !IsOurTeam("club atlético", ours) {
		t.Error("expected case/whitespace-insensitive match")
	}
	if IsOurTeam("", ours) {
		t.Error("empty label never matches")
	}
	if IsOurTeam("Wolves", ours) {
		t.Error("Wolves is not ours")
	}
}

func TestReserved(t *testing.T) {
	cases := map[string]Side{
		"OUR_TEAM":    SideOurs,
		"our_teams":   SideOurs,
		"Mis Equipos": SideOurs,
		"OPPONENTS":   SideOpponent,
		" rivales ":   SideOpponent,
		"RIVAL":       SideOpponent,
	}
	for in, want := range cases {
		side, ok := Reserved(in)
		if !ok || side != want {
			t.Errorf("Reserved(%q): want %v, got %v (%v)", in, want, side, ok)
		}
	}
	if _, ok := Reserved("Foxes"); ok {
		t.Error("Foxes is not reserved")
	}
}

func TestSideOf(t *testing.T) {
	ours := []string{"Foxes"}

	flagged := ev("1", "Foxes")
	flagged.Fields["IS_OPPONENT"] = true
	if got := SideOf(&flagged, ours); got != SideOpponent {
		t.Errorf("explicit flag should win, got %v", got)
	}

	flaggedStr := ev("2", "Wolves")
	flaggedStr.Extra = map[string]any{"IS_OPPONENT": "false"}
	if got := SideOf(&flaggedStr, ours); got != SideOurs {
		t.Errorf("string flag false: got %v", got)
	}

	mine := ev("3", "foxes")
	if got := SideOf(&mine, ours); got != SideOurs {
		t.Errorf("foxes: got %v", got)
	}
	theirs := ev("4", "Wolves")
	if got := SideOf(&theirs, ours); got != SideOpponent {
		t.Errorf("wolves: got %v", got)
	}
	literal := ev("5", "OPPONENT")
	if got := SideOf(&literal, nil); got != SideOpponent {
		t.Errorf("OPPONENT label: got %v", got)
	}
	none := model.Event{ID: "6", Type: "TACKLE"}
	if got := SideOf(&none, ours); got != SideUnknown {
		t.Errorf("no team: got %v", got)
	}
}

func TestLabel(t *testing.T) {
	info := &model.MatchInfo{Team: "Foxes", Opponent: "Wolves"}
	if got := Label("OUR_TEAM", info); got != "Foxes" {
		t.Errorf("got %q", got)
	}
	if got := Label("rivales", info); got != "Wolves" {
		t.Errorf("got %q", got)
	}
	if got := Label("  Bears ", nil); got != "Bears" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString(nil); got != "" {
		t.Errorf("nil: %q", got)
	}
	if got := NormalizeString("  a \t b  "); got != "a b" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeString(7.0); got != "7" {
		t.Errorf("got %q", got)
	}
}
