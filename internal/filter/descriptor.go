package filter

import (
	"fmt"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/model"
)

// Kind selects the matching rule for a descriptor name.
type Kind int

const (
	KindGeneric   Kind = iota // any other name, resolved through event.Get
	KindTeam                  // TEAM, with the reserved our/opponent tokens
	KindTimeGroup             // Time_Group and its aliases
	KindAdvance               // ADVANCE / AVANCE
	KindCategory              // event type; a list value matches any member
	KindPlayer                // player list membership
)

func (k Kind) String() string {
	switch k {
	case KindTeam:
		return "team"
	case KindTimeGroup:
		return "time"
	case KindAdvance:
		return "advance"
	case KindCategory:
		return "category"
	case KindPlayer:
		return "player"
	default:
		return "generic"
	}
}

var kinds = map[string]Kind{
	"TEAM":          KindTeam,
	"EQUIPO":        KindTeam,
	"TIME_GROUP":    KindTimeGroup,
	"QUARTER_GROUP": KindTimeGroup,
	"ADVANCE":       KindAdvance,
	"AVANCE":        KindAdvance,
	"CATEGORY":      KindCategory,
	"EVENT_TYPE":    KindCategory,
	"PLAYER":        KindPlayer,
	"PLAYER_NAME":   KindPlayer,
	"JUGADOR":       KindPlayer,
}

// Slot names read the normalized Event fields. Their aliases in kinds read
// their own field first and fall back to the slot when it is absent.
var slotNames = map[string]bool{"TEAM": true, "CATEGORY": true, "PLAYER": true}

// KindOf classifies a descriptor name. Case, spaces and dashes are ignored, so
// "Time-Group", "time_group" and "TIME GROUP" are all KindTimeGroup.
func KindOf(name string) Kind {
	if k, ok := kinds[canonicalName(name)]; ok {
		return k
	}
	return KindGeneric
}

func canonicalName(name string) string {
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(name)))
}

// Parse reads a "KEY=VALUE" flag into a descriptor. For category descriptors a
// comma-separated value becomes a list.
func Parse(s string) (model.FilterDescriptor, error) {
	key, val, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)
	if !ok || key == "" || val == "" {
		return model.FilterDescriptor{}, fmt.Errorf("parse filter %q: want KEY=VALUE", s)
	}
	if KindOf(key) == KindCategory && strings.Contains(val, ",") {
		var list []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return model.FilterDescriptor{Descriptor: key, Value: list}, nil
	}
	return model.FilterDescriptor{Descriptor: key, Value: val}, nil
}

// ParseAll parses every flag value, stopping at the first error.
func ParseAll(flags []string) (Set, error) {
	set := make(Set, 0, len(flags))
	for _, f := range flags {
		d, err := Parse(f)
		if err != nil {
			return nil, err
		}
		set = append(set, d)
	}
	return set, nil
}
