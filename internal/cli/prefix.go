// Package cli holds the terminal helpers shared by tn's commands.
package cli

import (
	"fmt"
	"strings"
)

// MatchName resolves input to one of names by exact match or unique prefix,
// ignoring case. kind names what is being matched in error messages.
func MatchName(input string, names []string, kind string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", fmt.Errorf("empty %s", kind)
	}

	var matches []string
	for _, name := range names {
		lower := strings.ToLower(name)
		if lower == needle {
			return name, nil
		}
		if strings.HasPrefix(lower, needle) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q (expected one of: %s)", kind, input, strings.Join(names, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, input, strings.Join(matches, ", "))
	}
}
