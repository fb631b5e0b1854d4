package aggregator

import (
	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

// Point values by scoring type. Used when an event carries no explicit value.
var pointTable = map[string]float64{
	"TRY":        5,
	"CONVERSION": 2,
	"PENALTY":    3,
	"DROP":       3,
}

// Scoring types in display order.
var pointTypes = []string{"TRY", "CONVERSION", "PENALTY", "DROP"}

var pointTypeAliases = map[string]string{
	"ENSAYO":       "TRY",
	"META":         "TRY",
	"CONV":         "CONVERSION",
	"CONVERSIÓN":   "CONVERSION",
	"PENAL":        "PENALTY",
	"PENALTY-KICK": "PENALTY",
	"PENALTY-GOAL": "PENALTY",
	"DROP-GOAL":    "DROP",
	"DROPGOAL":     "DROP",
}

var (
	valueKeys     = []string{"POINTS(VALUE)", "POINTS_VALUE", "POINTS VALUE", "POINTS"}
	pointTypeKeys = []string{"POINTS", "TIPO-PUNTOS", "TIPO_PUNTOS", "POINTS_TYPE", "MISC", "type"}
)

// PointType returns the scoring type of ev ("TRY", "CONVERSION", ...) or ""
// when ev is not a scoring event. Events typed TRY, CONVERSION or DROP score
// directly; POINTS / PUNTOS events carry the type in a field. A PENALTY event
// is an infraction, not a kick at goal, and never scores on its own.
func PointType(ev *model.Event) string {
	switch typeKey(ev.Type) {
	case "TRY", "CONVERSION", "DROP":
		return typeKey(ev.Type)
	case "POINTS", "PUNTOS":
	default:
		return ""
	}
	for _, k := range pointTypeKeys {
		v, ok := event.Get(ev, k)
		if !ok {
			continue
		}
		if _, numeric := event.Number(v); numeric {
			continue
		}
		if t := canonicalPointType(event.Stringify(v)); t != "" {
			return t
		}
	}
	return ""
}

func canonicalPointType(s string) string {
	k := typeKey(s)
	if k == "" {
		return ""
	}
	if alias, ok := pointTypeAliases[k]; ok {
		return alias
	}
	return k
}

// PointValue returns the points ev is worth: an explicit numeric value when the
// event has one, else the value for its scoring type, else 0.
func PointValue(ev *model.Event) float64 {
	if PointType(ev) == "" {
		return 0
	}
	for _, k := range valueKeys {
		v, ok := event.Get(ev, k)
		if !ok {
			continue
		}
		if n, ok := event.Number(v); ok {
			return n
		}
	}
	return pointTable[PointType(ev)]
}

// orderPointTypes puts the known scoring types first, then the rest in the
// order they were seen.
func orderPointTypes(seen []string) []string {
	out := make([]string, 0, len(seen))
	for _, t := range pointTypes {
		for _, s := range seen {
			if s == t {
				out = append(out, t)
				break
			}
		}
	}
	for _, s := range seen {
		if _, known := pointTable[s]; !known && s != "" {
			out = append(out, s)
		}
	}
	return out
}
