// Package aggregator turns a filtered event list into chart datasets.
//
// Every function here is pure: it reads the events it is given, never modifies
// them, and returns a fresh model.Dataset. Empty input yields a well-formed
// dataset (non-nil labels, one zero-filled row per series) so callers can
// render "no data" without nil checks.
//
// Categorical axes (players, infraction causes, advance outcomes) list only
// the labels that occur in the data. The time axis is always the full fixed
// window list and empty windows show as zero. The two behave differently on
// purpose: a chart over game time must keep its shape across filters.
package aggregator

import (
	"sort"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/team"
)

// Series names for per-side datasets.
const (
	SeriesOurs     = "Our Team"
	SeriesOpponent = "Opponent"
)

// Unknown labels events with no value on a categorical axis.
const Unknown = "Unknown"

// labelOrder decides how grid labels are sorted when the dataset is built.
type labelOrder int

const (
	orderInserted labelOrder = iota // insertion order (fixed axes)
	orderTotal                      // total across series, descending; ties keep first appearance
	orderAlpha
)

// grid accumulates values per (series, label) cell.
type grid struct {
	labels []string
	pos    map[string]int
	series []string
	rows   map[string][]float64
}

func newGrid(series ...string) *grid {
	g := &grid{pos: make(map[string]int), rows: make(map[string][]float64)}
	for _, s := range series {
		g.addSeries(s)
	}
	return g
}

func (g *grid) addSeries(name string) {
	if _, ok := g.rows[name]; ok {
		return
	}
	g.series = append(g.series, name)
	g.rows[name] = make([]float64, len(g.labels))
}

func (g *grid) addLabel(label string) int {
	if i, ok := g.pos[label]; ok {
		return i
	}
	i := len(g.labels)
	g.pos[label] = i
	g.labels = append(g.labels, label)
	for s := range g.rows {
		g.rows[s] = append(g.rows[s], 0)
	}
	return i
}

func (g *grid) add(series, label string, v float64) {
	g.addSeries(series)
	i := g.addLabel(label)
	g.rows[series][i] += v
}

func (g *grid) total(i int) float64 {
	var sum float64
	for _, s := range g.series {
		sum += g.rows[s][i]
	}
	return sum
}

func (g *grid) dataset(title string, order labelOrder) model.Dataset {
	idx := make([]int, len(g.labels))
	for i := range idx {
		idx[i] = i
	}
	switch order {
	case orderTotal:
		sort.SliceStable(idx, func(a, b int) bool { return g.total(idx[a]) > g.total(idx[b]) })
	case orderAlpha:
		sort.SliceStable(idx, func(a, b int) bool { return g.labels[idx[a]] < g.labels[idx[b]] })
	}

	ds := model.Dataset{Title: title, Labels: make([]string, len(idx)), Series: make([]model.Series, 0, len(g.series))}
	for i, j := range idx {
		ds.Labels[i] = g.labels[j]
	}
	for _, s := range g.series {
		vals := make([]float64, len(idx))
		for i, j := range idx {
			vals[i] = g.rows[s][j]
		}
		ds.Series = append(ds.Series, model.Series{Name: s, Values: vals})
	}
	return ds
}

// typeKey folds spelling differences in event types: "missed tackle",
// "MISSED_TACKLE" and "Missed-Tackle" share a key.
func typeKey(s string) string {
	return strings.NewReplacer(" ", "-", "_", "-").Replace(strings.ToUpper(strings.TrimSpace(s)))
}

func isType(ev *model.Event, names ...string) bool {
	k := typeKey(ev.Type)
	for _, n := range names {
		if k == typeKey(n) {
			return true
		}
	}
	return false
}

// sideSeries maps ev to its per-side series name. Events whose side cannot be
// told are left out of per-side charts.
func sideSeries(ev *model.Event, ctx filter.Context) (string, bool) {
	switch team.SideOf(ev, ctx.OurTeams) {
	case team.SideOurs:
		return SeriesOurs, true
	case team.SideOpponent:
		return SeriesOpponent, true
	}
	return "", false
}

func playersOrUnknown(ev *model.Event) []string {
	if len(ev.Players) == 0 {
		return []string{Unknown}
	}
	return ev.Players
}

func pct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(int(part/whole*100 + 0.5))
}

// All computes every chart over events, in display order.
func All(events []model.Event, ctx filter.Context) []model.Dataset {
	return []model.Dataset{
		EventTypeSummary(events),
		TacklesByPlayer(events),
		MissedTacklesByPlayer(events),
		TackleEffectiveness(events, ctx),
		ByTimeBucket(events, ctx, "TACKLE"),
		AdvanceDistribution(events),
		PointsByPlayer(events),
		PointsByType(events, ctx),
		PointsByTime(events, ctx),
		TriesByOrigin(events),
		PenaltiesByCause(events, ctx),
		ByTimeBucket(events, ctx, "PENALTY"),
		TurnoversByType(events),
		SetPiece(events, ctx, Lineout),
		SetPiece(events, ctx, Scrum),
	}
}
