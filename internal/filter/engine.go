// Package filter applies descriptor filters to a match's event list. Apply is
// the single source every chart, table and playlist reads from.
package filter

import (
	"strings"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/team"
	"github.com/pable/go-rugby-metrics/internal/timebucket"
)

// Context carries the match-wide facts descriptors are resolved against. It
// must be built from the full event list, never from a filtered subset, so that
// applying the same set twice gives the same answer.
type Context struct {
	OurTeams  []string
	ExtraTime bool
}

// NewContext resolves our teams: the override when given, else the volume
// heuristic over all events.
func NewContext(all []model.Event, override []string, extraTime bool) Context {
	ours := make([]string, 0, len(override))
	for _, o := range override {
		if o = team.NormalizeString(o); o != "" {
			ours = append(ours, o)
		}
	}
	if len(ours) == 0 {
		ours = team.DetectOurTeams(all)
	}
	return Context{OurTeams: ours, ExtraTime: extraTime}
}

// Apply returns the events satisfying every descriptor in set, ordered by
// ascending timestamp. An empty set returns all events. The input slice is
// never modified; the result is always a new slice.
func Apply(events []model.Event, set Set, ctx Context) []model.Event {
	if len(set) == 0 {
		return event.Sorted(events)
	}
	out := make([]model.Event, 0, len(events))
	for i := range events {
		if MatchesAll(&events[i], set, ctx) {
			out = append(out, events[i])
		}
	}
	event.SortByTime(out)
	return out
}

// MatchesAll reports whether ev satisfies every descriptor in set.
func MatchesAll(ev *model.Event, set Set, ctx Context) bool {
	for _, d := range set {
		if !Matches(ev, d, ctx) {
			return false
		}
	}
	return true
}

// Matches reports whether ev satisfies d. A value that cannot be resolved on
// the event is a non-match.
func Matches(ev *model.Event, d model.FilterDescriptor, ctx Context) bool {
	want := targets(d.Value)
	if len(want) == 0 {
		return false
	}
	kind := KindOf(d.Descriptor)
	own, hasOwn := aliasValue(ev, d.Descriptor)
	if kind == KindCategory {
		have := []string{ev.Type}
		if hasOwn {
			have = targets(own)
		}
		for _, w := range want {
			for _, h := range have {
				if strings.EqualFold(h, w) {
					return true
				}
			}
		}
		return false
	}
	// Only category descriptors take a list.
	if len(want) != 1 {
		return false
	}
	target := want[0]

	switch kind {
	case KindTeam:
		if _, reserved := team.Reserved(target); !reserved && hasOwn {
			for _, h := range targets(own) {
				if strings.EqualFold(team.NormalizeString(h), team.NormalizeString(target)) {
					return true
				}
			}
			return false
		}
		return matchTeam(ev, target, ctx)
	case KindTimeGroup:
		return timebucket.ForEvent(ev, ctx.ExtraTime) == timebucket.NormalizeLabel(target)
	case KindAdvance:
		v, _, ok := event.GetFirst(ev, "ADVANCE", "AVANCE")
		if !ok {
			return false
		}
		return valueMatches(v, target)
	case KindPlayer:
		if hasOwn {
			return valueMatches(own, target)
		}
		return ev.HasPlayer(target)
	default:
		v, ok := event.Get(ev, d.Descriptor)
		if !ok {
			return false
		}
		return valueMatches(v, target)
	}
}

// aliasValue resolves an alias of a slot name (EQUIPO, JUGADOR, EVENT_TYPE ...)
// through the alias's own field. The bare slot names TEAM, CATEGORY and PLAYER
// always read the normalized slot and report false.
func aliasValue(ev *model.Event, name string) (any, bool) {
	if slotNames[canonicalName(name)] {
		return nil, false
	}
	switch KindOf(name) {
	case KindTeam, KindCategory, KindPlayer:
		return event.Get(ev, name)
	}
	return nil, false
}

func matchTeam(ev *model.Event, target string, ctx Context) bool {
	if side, ok := team.Reserved(target); ok {
		return team.SideOf(ev, ctx.OurTeams) == side
	}
	if ev.Team == "" {
		return false
	}
	return strings.EqualFold(team.NormalizeString(ev.Team), team.NormalizeString(target))
}

// valueMatches tests list membership or string equality after coercion, so a
// numeric 10 matches "10".
func valueMatches(v any, target string) bool {
	switch v.(type) {
	case []any, []string:
		for _, s := range targets(v) {
			if s == target {
				return true
			}
		}
		return false
	}
	return event.Stringify(v) == target
}
