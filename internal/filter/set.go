package filter

import (
	"strings"

	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

// Set is an ordered collection of descriptors, combined with AND.
type Set []model.FilterDescriptor

// Has reports whether the set already holds d (same name, same value).
func (s Set) Has(d model.FilterDescriptor) bool {
	return s.index(d) >= 0
}

// Toggle returns a new set with d removed if present, or appended otherwise.
// The receiver is not modified.
func (s Set) Toggle(d model.FilterDescriptor) Set {
	i := s.index(d)
	out := make(Set, 0, len(s)+1)
	if i < 0 {
		out = append(out, s...)
		return append(out, d)
	}
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// Without returns a new set with every descriptor of the given name removed.
func (s Set) Without(name string) Set {
	key := canonicalName(name)
	out := make(Set, 0, len(s))
	for _, d := range s {
		if canonicalName(d.Descriptor) != key {
			out = append(out, d)
		}
	}
	return out
}

func (s Set) String() string {
	if len(s) == 0 {
		return "(none)"
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Descriptor + "=" + strings.Join(targets(d.Value), ",")
	}
	return strings.Join(parts, " AND ")
}

func (s Set) index(d model.FilterDescriptor) int {
	name := canonicalName(d.Descriptor)
	val := strings.Join(targets(d.Value), "\x00")
	for i, e := range s {
		if canonicalName(e.Descriptor) == name && strings.Join(targets(e.Value), "\x00") == val {
			return i
		}
	}
	return -1
}

// targets flattens a descriptor value into comparable strings.
func targets(v any) []string {
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := event.Stringify(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := event.Stringify(v); s != "" {
		return []string{s}
	}
	return nil
}
