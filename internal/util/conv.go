package util

import (
	"strconv"
)

// MustParseUint converts a path/query parameter to uint, returning 0 when the
// value does not parse.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParsePositiveInt parses s, falling back to def for missing or non-positive
// values. Used for page/limit query parameters.
func ParsePositiveInt(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
