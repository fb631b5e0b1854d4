package filter

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

var descriptorPool = []model.FilterDescriptor{
	{Descriptor: "TEAM", Value: "OUR_TEAM"},
	{Descriptor: "TEAM", Value: "OPPONENT"},
	{Descriptor: "TEAM", Value: "Wolves"},
	{Descriptor: "Time_Group", Value: "Q2"},
	{Descriptor: "Time_Group", Value: "primer cuarto"},
	{Descriptor: "ADVANCE", Value: "POSITIVE"},
	{Descriptor: "CATEGORY", Value: []string{"TACKLE", "SCRUM"}},
	{Descriptor: "PLAYER", Value: "10"},
	{Descriptor: "INFRACTION_TYPE", Value: "OFFSIDE"},
}

// randomMatch builds a deterministic event list from seed.
func randomMatch(seed int64, n int) []model.Event {
	r := rand.New(rand.NewSource(seed))
	types := []string{"TACKLE", "PENALTY", "SCRUM", "POINTS"}
	teams := []string{"Foxes", "Wolves", ""}
	advances := []any{"POSITIVE", "NEGATIVE", []any{"NEUTRAL", "POSITIVE"}, nil}
	infractions := []string{"OFFSIDE", "HIGH TACKLE", ""}

	records := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		rec := model.Record{
			"id":         strconv.Itoa(i),
			"event_type": types[r.Intn(len(types))],
			"team":       teams[r.Intn(len(teams))],
			"player":     strconv.Itoa(1 + r.Intn(15)),
		}
		if r.Intn(5) > 0 {
			rec["timestamp_sec"] = float64(r.Intn(6000))
		}
		extra := map[string]any{"INFRACTION_TYPE": infractions[r.Intn(len(infractions))]}
		if a := advances[r.Intn(len(advances))]; a != nil {
			extra["ADVANCE"] = a
		}
		rec["extra_data"] = extra
		records = append(records, rec)
	}
	return event.Normalize(records).Events
}

func randomSet(seed int64, n int) Set {
	r := rand.New(rand.NewSource(seed))
	set := make(Set, 0, n)
	for i := 0; i < n; i++ {
		set = append(set, descriptorPool[r.Intn(len(descriptorPool))])
	}
	return set
}

func sameIDs(a, b []model.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func sortedByTime(events []model.Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].TimestampSec < events[i-1].TimestampSec {
			return false
		}
	}
	return true
}

func TestProperty_Apply(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("applying a set twice equals applying it once", prop.ForAll(
		func(seed int64, n, k int) bool {
			events := randomMatch(seed, n)
			ctx := NewContext(events, nil, false)
			set := randomSet(seed+1, k)
			once := Apply(events, set, ctx)
			return sameIDs(Apply(once, set, ctx), once)
		},
		gen.Int64Range(1, 1<<40),
		gen.IntRange(0, 60),
		gen.IntRange(0, 3),
	))

	properties.Property("an empty set keeps every event in time order", prop.ForAll(
		func(seed int64, n int) bool {
			events := randomMatch(seed, n)
			got := Apply(events, Set{}, NewContext(events, nil, false))
			return len(got) == len(events) && sortedByTime(got)
		},
		gen.Int64Range(1, 1<<40),
		gen.IntRange(0, 60),
	))

	properties.Property("adding a descriptor never grows the result", prop.ForAll(
		func(seed int64, n, k, extra int) bool {
			events := randomMatch(seed, n)
			ctx := NewContext(events, nil, false)
			base := randomSet(seed+1, k)
			narrower := append(append(Set{}, base...), descriptorPool[extra])

			wide := Apply(events, base, ctx)
			narrow := Apply(events, narrower, ctx)
			if len(narrow) > len(wide) || !sortedByTime(narrow) {
				return false
			}
			in := make(map[string]bool, len(wide))
			for _, e := range wide {
				in[e.ID] = true
			}
			for _, e := range narrow {
				if !in[e.ID] {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, 1<<40),
		gen.IntRange(0, 60),
		gen.IntRange(0, 3),
		gen.IntRange(0, len(descriptorPool)-1),
	))

	properties.TestingRun(t)
}
