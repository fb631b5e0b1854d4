package aggregator

import (
	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/timebucket"
)

var (
	advanceKeys    = []string{"ADVANCE", "AVANCE"}
	infractionKeys = []string{"INFRACTION_TYPE", "TIPO DE INFRACCIÓN", "TIPO-INFRACCION", "INFRACTION"}
	turnoverKeys   = []string{"TURNOVER_TYPE", "TIPO-PERDIDA", "PERDIDA"}
	tryOriginKeys  = []string{"TRY_ORIGIN", "ORIGEN-TRY", "ORIGEN"}
)

// EventTypeSummary counts events per event type, busiest first.
func EventTypeSummary(events []model.Event) model.Dataset {
	g := newGrid("Events")
	for i := range events {
		g.add("Events", events[i].Type, 1)
	}
	return g.dataset("Events by type", orderTotal)
}

// TacklesByPlayer counts TACKLE events per player. A tackle with several
// players counts once for each of them.
func TacklesByPlayer(events []model.Event) model.Dataset {
	return perPlayer(events, "Tackles by player", "Tackles", "TACKLE")
}

// MissedTacklesByPlayer counts MISSED-TACKLE events per player.
func MissedTacklesByPlayer(events []model.Event) model.Dataset {
	return perPlayer(events, "Missed tackles by player", "Missed Tackles", "MISSED-TACKLE")
}

func perPlayer(events []model.Event, title, series, eventType string) model.Dataset {
	g := newGrid(series)
	for i := range events {
		ev := &events[i]
		if !isType(ev, eventType) {
			continue
		}
		for _, p := range playersOrUnknown(ev) {
			g.add(series, p, 1)
		}
	}
	return g.dataset(title, orderTotal)
}

// TackleEffectiveness compares completed and missed tackles per side. The
// "Effectiveness %" row is completed / attempted, rounded to a whole percent.
func TackleEffectiveness(events []model.Event, ctx filter.Context) model.Dataset {
	var made, missed [2]float64
	for i := range events {
		ev := &events[i]
		side, ok := sideIndex(ev, ctx)
		if !ok {
			continue
		}
		switch {
		case isType(ev, "TACKLE"):
			made[side]++
		case isType(ev, "MISSED-TACKLE"):
			missed[side]++
		}
	}
	return sideRatio("Tackle effectiveness", "Successful", "Missed", made, missed)
}

// SetPieceKind describes how to read won/lost outcomes for one set piece.
type SetPieceKind struct {
	Type       string
	Title      string
	ResultKeys []string
	Won        []string
	Lost       []string
}

var (
	Lineout = SetPieceKind{
		Type:       "LINEOUT",
		Title:      "Lineouts",
		ResultKeys: []string{"LINE_RESULT", "LINEOUT_RESULT", "RESULTADO-LINE"},
		Won:        []string{"CLEAN", "DIRTY", "WON", "PULITA", "SPORCA", "GANADA", "GANADO"},
		Lost:       []string{"LOST L", "LOST", "NOT-STRAIGHT", "PERSA", "PERDIDA", "PERDIDO", "TORCIDO"},
	}
	Scrum = SetPieceKind{
		Type:       "SCRUM",
		Title:      "Scrums",
		ResultKeys: []string{"SCRUM_RESULT", "RESULTADO-SCRUM"},
		Won:        []string{"WON", "WIN", "CLEAN", "VINTA", "GANADO", "GANADA"},
		Lost:       []string{"LOST", "PERSA", "PERDIDO", "PERDIDA"},
	}
)

// SetPiece counts won and lost set pieces of one kind per side. Set pieces
// without a recognised result are left out.
func SetPiece(events []model.Event, ctx filter.Context, kind SetPieceKind) model.Dataset {
	var won, lost [2]float64
	for i := range events {
		ev := &events[i]
		if !isType(ev, kind.Type) {
			continue
		}
		side, ok := sideIndex(ev, ctx)
		if !ok {
			continue
		}
		v, _, ok := event.GetFirst(ev, kind.ResultKeys...)
		if !ok {
			continue
		}
		result := typeKey(event.Stringify(v))
		switch {
		case oneOf(result, kind.Won):
			won[side]++
		case oneOf(result, kind.Lost):
			lost[side]++
		}
	}
	return sideRatio(kind.Title, "Won", "Lost", won, lost)
}

func oneOf(key string, names []string) bool {
	for _, n := range names {
		if key == typeKey(n) {
			return true
		}
	}
	return false
}

func sideIndex(ev *model.Event, ctx filter.Context) (int, bool) {
	s, ok := sideSeries(ev, ctx)
	if !ok {
		return 0, false
	}
	if s == SeriesOurs {
		return 0, true
	}
	return 1, true
}

func sideRatio(title, good, bad string, hits, misses [2]float64) model.Dataset {
	return model.Dataset{
		Title:  title,
		Labels: []string{SeriesOurs, SeriesOpponent},
		Series: []model.Series{
			{Name: good, Values: []float64{hits[0], hits[1]}},
			{Name: bad, Values: []float64{misses[0], misses[1]}},
			{Name: "Effectiveness %", Values: []float64{pct(hits[0], hits[0]+misses[0]), pct(hits[1], hits[1]+misses[1])}},
		},
	}
}

// AdvanceDistribution counts advance outcomes. A list-valued outcome counts
// once per member.
func AdvanceDistribution(events []model.Event) model.Dataset {
	g := newGrid("Events")
	for i := range events {
		for _, k := range advanceKeys {
			vals := event.Values(&events[i], k)
			if len(vals) == 0 {
				continue
			}
			for _, v := range vals {
				g.add("Events", v, 1)
			}
			break
		}
	}
	return g.dataset("Advance", orderAlpha)
}

// ByTimeBucket counts events of eventType per time window and side. An empty
// eventType counts every event. Every window is present, zero when empty.
func ByTimeBucket(events []model.Event, ctx filter.Context, eventType string) model.Dataset {
	title := "Events by time"
	if eventType != "" {
		title = eventType + " by time"
	}
	return timeSeries(events, ctx, title, func(ev *model.Event) float64 {
		if eventType == "" || isType(ev, eventType) {
			return 1
		}
		return 0
	})
}

// PointsByTime sums points per time window and side.
func PointsByTime(events []model.Event, ctx filter.Context) model.Dataset {
	return timeSeries(events, ctx, "Points by time", PointValue)
}

func timeSeries(events []model.Event, ctx filter.Context, title string, weight func(*model.Event) float64) model.Dataset {
	g := newGrid(SeriesOurs, SeriesOpponent)
	for _, l := range timebucket.Labels(ctx.ExtraTime) {
		g.addLabel(l)
	}
	for i := range events {
		ev := &events[i]
		w := weight(ev)
		if w == 0 {
			continue
		}
		side, ok := sideSeries(ev, ctx)
		if !ok {
			continue
		}
		g.add(side, timebucket.ForEvent(ev, ctx.ExtraTime), w)
	}
	return g.dataset(title, orderInserted)
}

// PointsByPlayer sums points per scorer, one series per scoring type. A
// scoring event credits its first player.
func PointsByPlayer(events []model.Event) model.Dataset {
	var seen []string
	for i := range events {
		if t := PointType(&events[i]); t != "" && !contains(seen, t) {
			seen = append(seen, t)
		}
	}
	g := newGrid(orderPointTypes(seen)...)
	for i := range events {
		ev := &events[i]
		t := PointType(ev)
		if t == "" {
			continue
		}
		g.add(t, playersOrUnknown(ev)[0], PointValue(ev))
	}
	return g.dataset("Points by player", orderTotal)
}

// PointsByType sums points per scoring type and side.
func PointsByType(events []model.Event, ctx filter.Context) model.Dataset {
	var seen []string
	for i := range events {
		if t := PointType(&events[i]); t != "" && !contains(seen, t) {
			seen = append(seen, t)
		}
	}
	g := newGrid(SeriesOurs, SeriesOpponent)
	for _, t := range orderPointTypes(seen) {
		g.addLabel(t)
	}
	for i := range events {
		ev := &events[i]
		t := PointType(ev)
		if t == "" {
			continue
		}
		side, ok := sideSeries(ev, ctx)
		if !ok {
			continue
		}
		g.add(side, t, PointValue(ev))
	}
	return g.dataset("Points by type", orderInserted)
}

// TriesByOrigin counts tries by the phase they came from.
func TriesByOrigin(events []model.Event) model.Dataset {
	g := newGrid("Tries")
	for i := range events {
		ev := &events[i]
		if PointType(ev) != "TRY" {
			continue
		}
		g.add("Tries", firstValue(ev, tryOriginKeys), 1)
	}
	return g.dataset("Tries by origin", orderTotal)
}

// PenaltiesByCause counts PENALTY events per infraction and side.
func PenaltiesByCause(events []model.Event, ctx filter.Context) model.Dataset {
	g := newGrid(SeriesOurs, SeriesOpponent)
	for i := range events {
		ev := &events[i]
		if !isType(ev, "PENALTY") {
			continue
		}
		side, ok := sideSeries(ev, ctx)
		if !ok {
			continue
		}
		g.add(side, firstValue(ev, infractionKeys), 1)
	}
	return g.dataset("Penalties by cause", orderTotal)
}

// TurnoversByType splits TURNOVER+ (recovered) and TURNOVER- (lost) by
// turnover type.
func TurnoversByType(events []model.Event) model.Dataset {
	g := newGrid("Recovered", "Lost")
	for i := range events {
		ev := &events[i]
		var series string
		switch {
		case isType(ev, "TURNOVER+"):
			series = "Recovered"
		case isType(ev, "TURNOVER-"):
			series = "Lost"
		default:
			continue
		}
		g.add(series, firstValue(ev, turnoverKeys), 1)
	}
	return g.dataset("Turnovers by type", orderTotal)
}

func firstValue(ev *model.Event, keys []string) string {
	for _, k := range keys {
		if s, ok := event.GetString(ev, k); ok && s != "" {
			return s
		}
	}
	return Unknown
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
