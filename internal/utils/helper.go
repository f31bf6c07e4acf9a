package utils

import (
	"strconv"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

// ParseStep reads a positive step from a query value. Missing or malformed
// values fall back to 1; fractional values are floored; anything below 1
// becomes 1.
func ParseStep(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != f {
		return 1
	}
	if f < 1 {
		return 1
	}
	if f > 1e6 {
		return 1e6
	}
	return int(f)
}
