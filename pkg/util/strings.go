package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseAmount parses a raw financial cell to float64. Thousands separators
// and surrounding whitespace are tolerated; anything else yields (0, false).
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
