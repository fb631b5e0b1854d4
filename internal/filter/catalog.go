package filter

import (
	"sort"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/timebucket"
)

// Top-level fields offered as descriptors when any event carries them.
var catalogFields = []string{"TRY_ORIGIN", "Time_Group", "player_name", "player_position"}

// Catalog lists the descriptor names found on events: the fixed top-level
// fields that are present, every extra_data key and every descriptors key.
// The result is sorted and has no duplicates.
func Catalog(events []model.Event) []string {
	seen := make(map[string]struct{})
	add := func(k string) {
		if k == "" || k == "descriptors" {
			return
		}
		seen[k] = struct{}{}
	}
	for i := range events {
		ev := &events[i]
		for _, f := range catalogFields {
			if _, ok := event.Get(ev, f); ok {
				add(f)
			}
		}
		for k := range ev.Extra {
			add(k)
		}
		for k := range ev.Descriptors {
			add(k)
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Values lists the distinct values the named descriptor takes across events.
// Lists are flattened and "None" is dropped. Time groups come back in axis
// order, classified the way Apply classifies them under ctx; everything else
// is sorted.
func Values(events []model.Event, name string, ctx Context) []string {
	kind := KindOf(name)
	if kind == KindTimeGroup {
		present := make(map[string]bool)
		for i := range events {
			present[timebucket.ForEvent(&events[i], ctx.ExtraTime)] = true
		}
		var out []string
		for _, l := range timebucket.Labels(ctx.ExtraTime) {
			if present[l] {
				out = append(out, l)
			}
		}
		return out
	}

	seen := make(map[string]struct{})
	for i := range events {
		ev := &events[i]
		var vals []string
		if own, ok := aliasValue(ev, name); ok {
			vals = targets(own)
		} else {
			switch kind {
			case KindTeam:
				vals = []string{ev.Team}
			case KindCategory:
				vals = []string{ev.Type}
			case KindPlayer:
				vals = ev.Players
			case KindAdvance:
				if v, _, ok := event.GetFirst(ev, "ADVANCE", "AVANCE"); ok {
					vals = targets(v)
				}
			default:
				vals = event.Values(ev, name)
			}
		}
		for _, v := range vals {
			if v != "" && v != "None" {
				seen[v] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
