package event

import (
	"strconv"
	"strings"
)

// Timestamp sources in precedence order. TIME and Game_Time carry clock strings.
var (
	topTimeKeys   = []string{"timestamp_sec", "SECOND", "SECOND_SINCE", "TIME"}
	extraTimeKeys = []string{"timestamp_sec", "Game_Time"}
)

func timestamp(top, extra map[string]any) (float64, bool) {
	for _, k := range topTimeKeys {
		if s, ok := ParseSeconds(top[k]); ok {
			return s, true
		}
	}
	if extra != nil {
		for _, k := range extraTimeKeys {
			if s, ok := ParseSeconds(extra[k]); ok {
				return s, true
			}
		}
	}
	return 0, false
}

// ParseSeconds reads a time offset from a number, a numeric string, or a clock
// string in "mm:ss" or "hh:mm:ss" form.
func ParseSeconds(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if n, ok := Number(v); ok {
		return n, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	return parseClock(s)
}

func parseClock(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var total float64
	for _, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}
