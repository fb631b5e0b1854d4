package event

import (
	"testing"

	"github.com/pable/go-rugby-metrics/internal/model"
)

func TestNormalize_DropsMalformedRecords(t *testing.T) {
	records := []model.Record{
		{"id": 1.0, "event_type": "TACKLE", "timestamp_sec": 10.0},
		{"id": 2.0, "timestamp_sec": 20.0},            // no type
		{"event_type": "PENALTY", "timestamp_sec": 5.0}, // no id
		{"id": 1.0, "event_type": "SCRUM"},              // duplicate id
		nil,
		{"ID": "7", "CATEGORY": "LINEOUT", "SECOND": "30"},
	}

	res := Normalize(records)
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	if res.Dropped() != 4 {
		t.Fatalf("expected 4 dropped records, got %d: %+v", res.Dropped(), res.Invalid)
	}

	reasons := map[int]string{}
	for _, inv := range res.Invalid {
		reasons[inv.Index] = inv.Reason
	}
	if reasons[1] != "missing event_type" {
		t.Errorf("record 1: want missing event_type, got %q", reasons[1])
	}
	if reasons[2] != "missing id" {
		t.Errorf("record 2: want missing id, got %q", reasons[2])
	}
	if reasons[3] != "duplicate id" {
		t.Errorf("record 3: want duplicate id, got %q", reasons[3])
	}

	legacy := res.Events[1]
	if legacy.ID != "7" || legacy.Type != "LINEOUT" || legacy.TimestampSec != 30 {
		t.Errorf("legacy record normalized wrong: %+v", legacy)
	}
}

func TestNormalize_SortsByTimestampMissingFirst(t *testing.T) {
	records := []model.Record{
		{"id": "a", "event_type": "TACKLE", "timestamp_sec": 300.0},
		{"id": "b", "event_type": "TACKLE"},
		{"id": "c", "event_type": "TACKLE", "timestamp_sec": 120.0},
	}
	res := Normalize(records)
	got := []string{res.Events[0].ID, res.Events[1].ID, res.Events[2].ID}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: want %v, got %v", want, got)
		}
	}
	if res.Events[0].HasTimestamp {
		t.Error("event b should report HasTimestamp=false")
	}
}

func TestNormalize_TimestampFallbacks(t *testing.T) {
	cases := []struct {
		name string
		rec  model.Record
		want float64
	}{
		{"timestamp_sec", model.Record{"timestamp_sec": 42.5}, 42.5},
		{"SECOND", model.Record{"SECOND": 61.0}, 61},
		{"SECOND_SINCE string", model.Record{"SECOND_SINCE": "75"}, 75},
		{"TIME mm:ss", model.Record{"TIME": "12:30"}, 750},
		{"TIME hh:mm:ss", model.Record{"TIME": "1:02:03"}, 3723},
		{"Game_Time", model.Record{"extra_data": map[string]any{"Game_Time": "40:00"}}, 2400},
	}
	for i, c := range cases {
		c.rec["id"] = float64(i + 1)
		c.rec["event_type"] = "TACKLE"
		res := Normalize([]model.Record{c.rec})
		if len(res.Events) != 1 {
			t.Fatalf("%s: record dropped: %+v", c.name, res.Invalid)
		}
		ev := res.Events[0]
		if !ev.HasTimestamp || ev.TimestampSec != c.want {
			t.Errorf("%s: want %v, got %v (has=%v)", c.name, c.want, ev.TimestampSec, ev.HasTimestamp)
		}
	}
}

func TestNormalize_PlayersAndTeam(t *testing.T) {
	res := Normalize([]model.Record{
		{"id": 1.0, "event_type": "TACKLE", "extra_data": map[string]any{
			"JUGADOR": []any{"13", "20", "13", "None"},
			"EQUIPO":  " Foxes ",
		}},
		{"id": 2.0, "event_type": "TACKLE", "player_name": 9.0, "team": "Wolves"},
	})
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	multi := res.Events[0]
	if len(multi.Players) != 2 || multi.Players[0] != "13" || multi.Players[1] != "20" {
		t.Errorf("multi-player tackle: got %v", multi.Players)
	}
	if multi.Team != "Foxes" {
		t.Errorf("team from extra_data.EQUIPO: got %q", multi.Team)
	}
	single := res.Events[1]
	if len(single.Players) != 1 || single.Players[0] != "9" {
		t.Errorf("numeric player_name: got %v", single.Players)
	}
	if !single.HasPlayer("9") {
		t.Error("HasPlayer(9) should be true")
	}
}

func TestGet_PrecedenceAndVariants(t *testing.T) {
	res := Normalize([]model.Record{{
		"id":         1.0,
		"event_type": "TACKLE",
		"ADVANCE":    "None",
		"extra_data": map[string]any{
			"advance": "",
			"descriptors": map[string]any{
				"ADVANCE": "POSITIVE",
			},
			"infraction_type": "OFFSIDE",
		},
		"Scrum Result": "WON",
	}})
	ev := &res.Events[0]

	if v, ok := Get(ev, "ADVANCE"); !ok || v != "POSITIVE" {
		t.Errorf("ADVANCE should skip None/empty and reach descriptors, got %v (%v)", v, ok)
	}
	if v, ok := Get(ev, "INFRACTION_TYPE"); !ok || v != "OFFSIDE" {
		t.Errorf("lower-case variant in extra_data: got %v (%v)", v, ok)
	}
	if v, ok := Get(ev, "Scrum Result"); !ok || v != "WON" {
		t.Errorf("original spelling: got %v (%v)", v, ok)
	}
	if _, ok := Get(ev, "MISSING"); ok {
		t.Error("missing key should not resolve")
	}
}

func TestGet_TopLevelWinsOverExtra(t *testing.T) {
	res := Normalize([]model.Record{{
		"id": 1.0, "event_type": "PENALTY",
		"INFRACTION_TYPE": "HIGH TACKLE",
		"extra_data":      map[string]any{"INFRACTION_TYPE": "OFFSIDE"},
	}})
	v, _ := GetString(&res.Events[0], "infraction-type")
	if v != "HIGH TACKLE" {
		t.Errorf("top-level should win, got %q", v)
	}
}

func TestValues_FlattensLists(t *testing.T) {
	res := Normalize([]model.Record{{
		"id": 1.0, "event_type": "TACKLE",
		"extra_data": map[string]any{"ADVANCE": []any{"NEUTRAL", 3.0, nil}},
	}})
	vals := Values(&res.Events[0], "ADVANCE")
	if len(vals) != 2 || vals[0] != "NEUTRAL" || vals[1] != "3" {
		t.Errorf("got %v", vals)
	}
}

func TestVariants(t *testing.T) {
	got := Variants("Time-Group")
	want := []string{"Time-Group", "TIME-GROUP", "time-group", "Time_Group", "TIME_GROUP", "time_group"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]any{
		"10":   10.0,
		"2.5":  2.5,
		"true": true,
		"x":    " x ",
		"":     nil,
	}
	for want, in := range cases {
		if got := Stringify(in); got != want {
			t.Errorf("Stringify(%v): want %q, got %q", in, want, got)
		}
	}
}

func TestParseSeconds_Rejects(t *testing.T) {
	for _, in := range []any{"abc", "1:2:3:4", "-1:00", true, nil} {
		if _, ok := ParseSeconds(in); ok {
			t.Errorf("ParseSeconds(%v) should fail", in)
		}
	}
}
