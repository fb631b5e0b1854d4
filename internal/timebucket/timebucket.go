// Package timebucket maps game time to the fixed 20-minute windows used on
// every time axis, and maps the textual labels found in older exports onto
// the same windows.
package timebucket

import (
	"regexp"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

// Canonical labels. The odd spacing in Q1 is what the front-end charts key on.
const (
	Q1        = "0'- 20'"
	Q2        = "20' - 40'"
	Q3        = "40' - 60'"
	Q4        = "60' - 80'"
	ExtraTime = "+80'"
)

const (
	bucketSec    = 1200.0
	extraTimeSec = 4 * bucketSec
)

var (
	regular  = []string{Q1, Q2, Q3, Q4}
	extended = []string{Q1, Q2, Q3, Q4, ExtraTime}
)

// GroupKeys are the field names that carry a pre-computed time group.
var GroupKeys = []string{"Time_Group", "Quarter_Group", "Time-Group", "time_group"}

// Labels returns the axis labels, with the extra-time window appended when
// extraTime is set. The returned slice is a fresh copy.
func Labels(extraTime bool) []string {
	src := regular
	if extraTime {
		src = extended
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Classify returns the window containing sec. Windows are half-open, so 1200
// belongs to the second one. Negative offsets land in the first window. Without
// extraTime the last window is unbounded.
func Classify(sec float64, extraTime bool) string {
	switch {
	case sec < bucketSec:
		return Q1
	case sec < 2*bucketSec:
		return Q2
	case sec < 3*bucketSec:
		return Q3
	case extraTime && sec >= extraTimeSec:
		return ExtraTime
	default:
		return Q4
	}
}

// Index returns the position of label on the axis, or -1.
func Index(label string, extraTime bool) int {
	for i, l := range Labels(extraTime) {
		if l == label {
			return i
		}
	}
	return -1
}

// IsCanonical reports whether label is one of the five window labels.
func IsCanonical(label string) bool {
	for _, l := range extended {
		if l == label {
			return true
		}
	}
	return false
}

type alias struct {
	re    *regexp.Regexp
	label string
}

var ordinal = [...]string{"", Q1, Q2, Q3, Q4}

var (
	// Leading word decides: "primer cuarto" is Q1, "cuarto" alone is Q4.
	wordAliases = []alias{
		{regexp.MustCompile(`^(primer|primero|primera|first)\b`), Q1},
		{regexp.MustCompile(`^(segundo|segunda|second)\b`), Q2},
		{regexp.MustCompile(`^(tercer|tercero|tercera|terc|third)\b`), Q3},
		{regexp.MustCompile(`^(cuarto|cuarta|fourth)\b`), Q4},
		{regexp.MustCompile(`^(extra|overtime|ot|prorroga|prórroga|tiempo extra)\b`), ExtraTime},
	}
	digitAliases = []*regexp.Regexp{
		regexp.MustCompile(`^q\s*([1-4])$`),
		regexp.MustCompile(`^([1-4])\s*q$`),
		regexp.MustCompile(`^([1-4])\s*(?:º|°|st|nd|rd|th|er|do|ro|to)?\s*(?:quarter|cuarto|period|periodo|q)?$`),
	}
	spaces = regexp.MustCompile(`\s+`)
	dashes = regexp.MustCompile(`\s*-\s*`)
)

// NormalizeLabel maps a time-group label in any known dialect to its canonical
// form. "Q1", "1st", "primer cuarto" and "0-20" all become Q1. Labels that match
// no alias are returned with whitespace collapsed and dashes spaced as " - ";
// they are not canonical and will match no computed window.
func NormalizeLabel(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if c, ok := compactCanonical(s); ok {
		return c
	}
	low := strings.ToLower(spaces.ReplaceAllString(s, " "))
	for _, a := range wordAliases {
		if a.re.MatchString(low) {
			return a.label
		}
	}
	for _, re := range digitAliases {
		if m := re.FindStringSubmatch(low); m != nil {
			return ordinal[m[1][0]-'0']
		}
	}
	return dashes.ReplaceAllString(spaces.ReplaceAllString(s, " "), " - ")
}

// compactCanonical compares s to the canonical labels ignoring spaces and
// quote marks, so "0' - 20'" and "0-20" resolve to Q1.
func compactCanonical(s string) (string, bool) {
	key := compact(s)
	for _, l := range extended {
		if compact(l) == key {
			return l, true
		}
	}
	return "", false
}

func compact(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\'', '’', '´', '`', '"':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ForEvent returns the window of ev. A timestamp always wins; without one the
// event's own time-group label is used when it normalizes to a known window,
// and otherwise the event falls into the first window.
func ForEvent(ev *model.Event, extraTime bool) string {
	if ev.HasTimestamp {
		return Classify(ev.TimestampSec, extraTime)
	}
	for _, k := range GroupKeys {
		raw, ok := event.GetString(ev, k)
		if !ok {
			continue
		}
		if l := NormalizeLabel(raw); IsCanonical(l) {
			if l == ExtraTime && !extraTime {
				return Q4
			}
			return l
		}
	}
	return Q1
}
