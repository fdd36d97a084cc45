// Package units converts human-facing length strings to the engine's single
// internal unit, decimal feet. The clearance core calls it exactly twice per
// run, to obtain the minimum-clearance and merge-tolerance constants.
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLength parses a length literal into decimal feet. Accepted forms:
//
//	2'        feet
//	1"        inches
//	2' 6"     feet and inches
//	2.5       bare number, taken as feet
func ParseLength(s string) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("units: empty length")
	}

	total := 0.0
	seen := false
	rest := in
	for rest != "" {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			break
		}
		i := 0
		for i < len(rest) && (rest[i] == '.' || rest[i] == '-' || rest[i] == '+' || (rest[i] >= '0' && rest[i] <= '9')) {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("units: cannot parse %q", s)
		}
		num, err := strconv.ParseFloat(rest[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("units: cannot parse %q: %w", s, err)
		}
		rest = rest[i:]
		switch {
		case strings.HasPrefix(rest, "'"):
			total += num
			rest = rest[1:]
		case strings.HasPrefix(rest, `"`):
			total += num / 12.0
			rest = rest[1:]
		case strings.TrimSpace(rest) == "":
			total += num // bare number: feet
			rest = ""
		default:
			return 0, fmt.Errorf("units: unexpected suffix in %q", s)
		}
		seen = true
	}
	if !seen {
		return 0, fmt.Errorf("units: cannot parse %q", s)
	}
	return total, nil
}

// FormatFeet renders decimal feet for reports, e.g. 6.02 -> "6.02'".
func FormatFeet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "'"
}
