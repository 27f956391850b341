// Package datetime parses and checks the calendar years used on the command
// line and in reform files.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseYear parses a four-digit calendar year as written in reform files.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, fmt.Errorf("year %q is not a four-digit year", s)
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("year %q is not numeric: %w", s, err)
	}
	return y, nil
}

// InRange reports whether year lies in [first, last].
func InRange(year, first, last int) bool {
	return year >= first && year <= last
}
