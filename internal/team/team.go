// Package team classifies event team labels as "ours" or "opponent".
//
// Team fields are free text: several languages, inconsistent casing, and no
// explicit ownership. Classification is therefore heuristic. DetectOurTeams
// picks the label with the most events, which misclassifies a home side that
// records fewer events than its opponent; callers should let the user
// override the result.
package team

import (
	"sort"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

// Side is the role of an event's team.
type Side int

const (
	SideUnknown  Side = 0
	SideOurs     Side = 1
	SideOpponent Side = 2
)

func (s Side) String() string {
	switch s {
	case SideOurs:
		return "OUR_TEAM"
	case SideOpponent:
		return "OPPONENT"
	default:
		return "?"
	}
}

// Reserved filter values. Compared after NormalizeString and upper-casing.
var (
	ourTokens      = []string{"OUR_TEAM", "OUR_TEAMS", "OUR TEAM", "OUR TEAMS", "MIS EQUIPOS", "NUESTRO EQUIPO", "NUESTROS EQUIPOS"}
	opponentTokens = []string{"OPPONENT", "OPPONENTS", "RIVAL", "RIVALS", "RIVALES", "RIVALE"}
)

// NormalizeString trims s and collapses internal whitespace. nil becomes "".
func NormalizeString(s any) string {
	if s == nil {
		return ""
	}
	return strings.Join(strings.Fields(event.Stringify(s)), " ")
}

// Reserved reports whether value is one of the reserved team tokens and, if so,
// which side it selects.
func Reserved(value any) (Side, bool) {
	v := strings.ToUpper(NormalizeString(value))
	if v == "" {
		return SideUnknown, false
	}
	for _, t := range ourTokens {
		if v == t {
			return SideOurs, true
		}
	}
	for _, t := range opponentTokens {
		if v == t {
			return SideOpponent, true
		}
	}
	return SideUnknown, false
}

// Count is the number of events seen for one team label.
type Count struct {
	Team   string
	Events int
}

// Counts returns every distinct team label with its event volume, ordered by
// volume descending and then by first appearance in events.
func Counts(events []model.Event) []Count {
	index := make(map[string]int)
	var out []Count
	for i := range events {
		label := NormalizeString(events[i].Team)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		pos, ok := index[key]
		if !ok {
			pos = len(out)
			index[key] = pos
			out = append(out, Count{Team: label})
		}
		out[pos].Events++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Events > out[j].Events })
	return out
}

// DetectOurTeams returns the most active team label as a one-element list, or
// an empty list when no event carries a team. Pass the full, unfiltered event
// list so a narrow filter does not bias the guess. Labels that are reserved
// opponent tokens are never picked.
func DetectOurTeams(events []model.Event) []string {
	for _, c := range Counts(events) {
		if side, ok := Reserved(c.Team); ok && side == SideOpponent {
			continue
		}
		return []string{c.Team}
	}
	return []string{}
}

// IsOurTeam reports whether label names one of ours, ignoring case and
// surrounding or repeated whitespace.
func IsOurTeam(label string, ours []string) bool {
	l := NormalizeString(label)
	if l == "" {
		return false
	}
	for _, o := range ours {
		if strings.EqualFold(l, NormalizeString(o)) {
			return true
		}
	}
	return false
}

// SideOf classifies ev. An explicit IS_OPPONENT flag wins; otherwise a reserved
// team label decides; otherwise the label is tested against ours. Events with
// no team and no flag are SideUnknown.
func SideOf(ev *model.Event, ours []string) Side {
	if flag, ok := opponentFlag(ev); ok {
		if flag {
			return SideOpponent
		}
		return SideOurs
	}
	if ev.Team == "" {
		return SideUnknown
	}
	if side, ok := Reserved(ev.Team); ok {
		return side
	}
	if IsOurTeam(ev.Team, ours) {
		return SideOurs
	}
	return SideOpponent
}

func opponentFlag(ev *model.Event) (bool, bool) {
	v, ok := event.Get(ev, "IS_OPPONENT")
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "si", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	case float64:
		return t != 0, true
	}
	return false, false
}

// Label resolves a reserved token to the team name carried by match info, so
// charts can print "Foxes" instead of "OUR_TEAM". Other labels pass through
// normalized.
func Label(label string, info *model.MatchInfo) string {
	l := NormalizeString(label)
	if info == nil {
		return l
	}
	side, ok := Reserved(l)
	switch {
	case ok && side == SideOurs && info.Team != "":
		return info.Team
	case ok && side == SideOpponent && info.Opponent != "":
		return info.Opponent
	}
	return l
}
