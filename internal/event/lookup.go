package event

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pable/go-rugby-metrics/internal/model"
)

// Get resolves key on ev. It tries the top-level fields, then extra_data, then
// extra_data.descriptors, and in each location the key's spelling variants
// (as given, upper-case, lower-case, underscored). The first usable value wins:
// nil, "", "None" and empty lists are skipped.
//
// Every filter and aggregator reads event attributes through Get.
func Get(ev *model.Event, key string) (any, bool) {
	if ev == nil || key == "" {
		return nil, false
	}
	variants := Variants(key)
	for _, m := range [...]map[string]any{ev.Fields, ev.Extra, ev.Descriptors} {
		if m == nil {
			continue
		}
		for _, k := range variants {
			if v, ok := m[k]; ok && usable(v) {
				return v, true
			}
		}
	}
	return nil, false
}

// GetString is Get followed by Stringify. Lists are joined with ", ".
func GetString(ev *model.Event, key string) (string, bool) {
	v, ok := Get(ev, key)
	if !ok {
		return "", false
	}
	if list, isList := asList(v); isList {
		return strings.Join(list, ", "), true
	}
	return Stringify(v), true
}

// GetFirst returns the first key in keys that resolves on ev.
func GetFirst(ev *model.Event, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := Get(ev, k); ok {
			return v, k, true
		}
	}
	return nil, "", false
}

// Values resolves key and flattens the result into strings. A scalar yields a
// one-element slice; a list yields its usable elements.
func Values(ev *model.Event, key string) []string {
	v, ok := Get(ev, key)
	if !ok {
		return nil
	}
	if list, isList := asList(v); isList {
		return list
	}
	return []string{Stringify(v)}
}

// Variants returns the spellings tried for key, without duplicates.
func Variants(key string) []string {
	under := strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	candidates := [...]string{
		key,
		strings.ToUpper(key),
		strings.ToLower(key),
		under,
		strings.ToUpper(under),
		strings.ToLower(under),
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, o := range out {
			if o == c {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// Stringify renders a decoded JSON value for equality comparison. Integral
// floats print without a fractional part so 10 and "10" compare equal.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Number converts a decoded value to a float64. Numeric strings are accepted.
func Number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func usable(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		s := strings.TrimSpace(t)
		return s != "" && s != "None"
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	return true
}

// asList flattens list-shaped values, dropping unusable elements.
func asList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if usable(s) {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if usable(e) {
				out = append(out, Stringify(e))
			}
		}
		return out, true
	}
	return nil, false
}

// asMap accepts both plain maps and model.Record.
func asMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case model.Record:
		return t
	}
	return nil
}
