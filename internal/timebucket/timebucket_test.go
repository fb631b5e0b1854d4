package timebucket

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pable/go-rugby-metrics/internal/model"
)

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		sec  float64
		want string
	}{
		{-30, Q1},
		{0, Q1},
		{1199, Q1},
		{1199.9, Q1},
		{1200, Q2},
		{2399, Q2},
		{2400, Q3},
		{3599, Q3},
		{3600, Q4},
		{4799, Q4},
		{9000, Q4},
	}
	for _, c := range cases {
		if got := Classify(c.sec, false); got != c.want {
			t.Errorf("Classify(%v): want %q, got %q", c.sec, c.want, got)
		}
	}
}

func TestClassify_ExtraTime(t *testing.T) {
	if got := Classify(4799, true); got != Q4 {
		t.Errorf("4799: want %q, got %q", Q4, got)
	}
	if got := Classify(4800, true); got != ExtraTime {
		t.Errorf("4800: want %q, got %q", ExtraTime, got)
	}
	if got := Classify(4800, false); got != Q4 {
		t.Errorf("4800 without extra time: want %q, got %q", Q4, got)
	}
}

func TestLabels(t *testing.T) {
	if n := len(Labels(false)); n != 4 {
		t.Errorf("regular axis: want 4 labels, got %d", n)
	}
	l := Labels(true)
	if len(l) != 5 || l[4] != ExtraTime {
		t.Errorf("extended axis: got %v", l)
	}
	l[0] = "mutated"
	if Labels(true)[0] != Q1 {
		t.Error("Labels must return a copy")
	}
}

func TestNormalizeLabel_Aliases(t *testing.T) {
	cases := map[string]string{
		"Q1":             Q1,
		"q 1":            Q1,
		"1Q":             Q1,
		"primer cuarto":  Q1,
		"Primer Cuarto":  Q1,
		"1st":            Q1,
		"First quarter":  Q1,
		"1º cuarto":      Q1,
		"0-20":           Q1,
		"0' - 20'":       Q1,
		"0'- 20'":        Q1,
		"segundo cuarto": Q2,
		"Q2":             Q2,
		"2nd":            Q2,
		"20'-40'":        Q2,
		"tercer cuarto":  Q3,
		"3rd quarter":    Q3,
		"cuarto cuarto":  Q4,
		"Cuarto":         Q4,
		"4th":            Q4,
		"+80":            ExtraTime,
		"extra time":     ExtraTime,
	}
	for in, want := range cases {
		if got := NormalizeLabel(in); got != want {
			t.Errorf("NormalizeLabel(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestNormalizeLabel_Unknown(t *testing.T) {
	if got := NormalizeLabel("  half   time-break "); got != "half time - break" {
		t.Errorf("got %q", got)
	}
	if IsCanonical(NormalizeLabel("half time")) {
		t.Error("unknown label must not become canonical")
	}
	if got := NormalizeLabel("   "); got != "" {
		t.Errorf("blank: got %q", got)
	}
}

func TestForEvent(t *testing.T) {
	timed := model.Event{ID: "1", Type: "TACKLE", TimestampSec: 2500, HasTimestamp: true,
		Fields: map[string]any{"Time_Group": "Q1"}}
	if got := ForEvent(&timed, false); got != Q3 {
		t.Errorf("timestamp should win over label: got %q", got)
	}

	labelled := model.Event{ID: "2", Type: "TACKLE",
		Extra: map[string]any{"Quarter_Group": "segundo cuarto"}}
	if got := ForEvent(&labelled, false); got != Q2 {
		t.Errorf("label fallback: got %q", got)
	}

	bare := model.Event{ID: "3", Type: "TACKLE"}
	if got := ForEvent(&bare, false); got != Q1 {
		t.Errorf("missing timestamp: got %q", got)
	}

	extra := model.Event{ID: "4", Type: "TACKLE", Fields: map[string]any{"Time_Group": "+80'"}}
	if got := ForEvent(&extra, false); got != Q4 {
		t.Errorf("extra-time label without extra time: got %q", got)
	}
	if got := ForEvent(&extra, true); got != ExtraTime {
		t.Errorf("extra-time label with extra time: got %q", got)
	}
}

func TestProperty_TotalCoverage(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every non-negative offset lands in exactly one window", prop.ForAll(
		func(sec int64) bool {
			got := Classify(float64(sec), false)
			hits := 0
			for _, l := range Labels(false) {
				if l == got {
					hits++
				}
			}
			return hits == 1
		},
		gen.Int64Range(0, 20000),
	))

	properties.Property("windows follow time order", prop.ForAll(
		func(a, b int64) bool {
			if a > b {
				a, b = b, a
			}
			return Index(Classify(float64(a), true), true) <= Index(Classify(float64(b), true), true)
		},
		gen.Int64Range(0, 10000),
		gen.Int64Range(0, 10000),
	))

	properties.TestingRun(t)
}
