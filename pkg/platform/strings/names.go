// Package strings provides string slice checks used when validating
// externally supplied name lists such as feature schemas.
package strings

import (
	"strings"
)

// Duplicates returns every value that appears more than once, in order of
// its second occurrence. Values are compared exactly.
//
// Example:
//
//	Duplicates([]string{"AGE", "PAY_0", "AGE", "PAY_0", "AGE"})
//	// Returns: []string{"AGE", "PAY_0"}
func Duplicates(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]int, len(values))
	var dupes []string
	for _, v := range values {
		seen[v]++
		if seen[v] == 2 {
			dupes = append(dupes, v)
		}
	}
	return dupes
}

// FirstBlank returns the index of the first empty or whitespace-only value,
// or -1 when there is none.
func FirstBlank(values []string) int {
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			return i
		}
	}
	return -1
}
