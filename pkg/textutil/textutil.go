// Package textutil provides the string trimming helpers shared by the
// refactoring operations.
package textutil

import "regexp"

// DefaultTrimPattern strips whitespace and parentheses from either end
// of a string.
var DefaultTrimPattern = regexp.MustCompile(`[\s()]+`)

// Trim removes all leading and trailing matches of pattern from s.
// A nil pattern falls back to DefaultTrimPattern. Trim is idempotent:
// trimming an already-trimmed string returns it unchanged.
func Trim(s string, pattern *regexp.Regexp) string {
	if pattern == nil {
		pattern = DefaultTrimPattern
	}
	for {
		loc := pattern.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			break
		}
		s = s[loc[1]:]
	}
	for {
		locs := pattern.FindAllStringIndex(s, -1)
		if len(locs) == 0 {
			break
		}
		last := locs[len(locs)-1]
		if last[1] != len(s) {
			break
		}
		s = s[:last[0]]
	}
	return s
}

// TrimAll maps Trim over lines, preserving order and length. Genuinely
// empty results are kept; callers filter them if unwanted.
func TrimAll(lines []string, pattern *regexp.Regexp) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Trim(line, pattern)
	}
	return out
}
