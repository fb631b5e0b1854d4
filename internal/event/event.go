// Package event normalizes raw event records into model.Event values and
// provides the single attribute lookup used by filters and aggregators.
package event

import (
	"sort"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/model"
)

// Field names that historically carried the same concept.
var (
	idKeys     = []string{"id", "ID", "Id", "event_id"}
	typeKeys   = []string{"event_type", "EVENT_TYPE", "CATEGORY", "category", "Category"}
	teamKeys   = []string{"TEAM", "team", "Team", "EQUIPO", "OPPONENT", "opponent", "Opponent", "team_name", "opponent_name", "home", "away", "teamName"}
	playerKeys = []string{"PLAYER", "player", "player_name", "JUGADOR", "players"}
	durKeys    = []string{"duration_sec", "DURATION", "duration"}
)

// Invalid describes a record that Normalize dropped.
type Invalid struct {
	Index  int    // position in the input slice
	ID     string // may be empty
	Reason string
}

// Result is the outcome of Normalize.
type Result struct {
	Events  []model.Event // ascending by timestamp
	Invalid []Invalid
}

// Dropped returns the number of records that were not normalized.
func (r *Result) Dropped() int { return len(r.Invalid) }

// Normalize converts raw records into events. Records without an id or an
// event type, and records repeating an id already seen, are reported in
// Result.Invalid rather than defaulted. The input is not modified.
func Normalize(records []model.Record) Result {
	var res Result
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		if rec == nil {
			res.Invalid = append(res.Invalid, Invalid{Index: i, Reason: "empty record"})
			continue
		}
		ev := model.Event{Fields: rec}
		ev.Extra = asMap(rec["extra_data"])
		if ev.Extra != nil {
			ev.Descriptors = asMap(ev.Extra["descriptors"])
		}
		if ev.Descriptors == nil {
			ev.Descriptors = asMap(rec["descriptors"])
		}

		ev.ID = firstString(rec, ev.Extra, idKeys)
		ev.Type = firstString(rec, ev.Extra, typeKeys)
		if ev.ID == "" {
			res.Invalid = append(res.Invalid, Invalid{Index: i, Reason: "missing id"})
			continue
		}
		if ev.Type == "" {
			res.Invalid = append(res.Invalid, Invalid{Index: i, ID: ev.ID, Reason: "missing event_type"})
			continue
		}
		if _, dup := seen[ev.ID]; dup {
			res.Invalid = append(res.Invalid, Invalid{Index: i, ID: ev.ID, Reason: "duplicate id"})
			continue
		}
		seen[ev.ID] = struct{}{}

		ev.TimestampSec, ev.HasTimestamp = timestamp(rec, ev.Extra)
		ev.DurationSec = duration(rec, ev.Extra)
		ev.Team = firstString(rec, ev.Extra, teamKeys)
		ev.Players = players(&ev)

		res.Events = append(res.Events, ev)
	}

	SortByTime(res.Events)
	return res
}

// SortByTime orders events by ascending timestamp in place. Events without a
// timestamp sort as 0. Ties keep their relative order.
func SortByTime(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampSec < events[j].TimestampSec
	})
}

// Sorted returns a time-ordered copy of events.
func Sorted(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	SortByTime(out)
	return out
}

func firstString(top, extra map[string]any, keys []string) string {
	for _, m := range [...]map[string]any{top, extra} {
		if m == nil {
			continue
		}
		for _, k := range keys {
			v, ok := m[k]
			if !ok || !usable(v) {
				continue
			}
			if _, isList := asList(v); isList {
				continue
			}
			if s := Stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func duration(top, extra map[string]any) float64 {
	for _, m := range [...]map[string]any{top, extra} {
		if m == nil {
			continue
		}
		for _, k := range durKeys {
			if d, ok := Number(m[k]); ok && d > 0 {
				return d
			}
		}
	}
	return 0
}

func players(ev *model.Event) []string {
	for _, k := range playerKeys {
		vals := Values(ev, k)
		if len(vals) == 0 {
			continue
		}
		out := make([]string, 0, len(vals))
		seen := make(map[string]struct{}, len(vals))
		for _, p := range vals {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
