// Package textutil holds small string helpers shared by request handling.
package textutil

import "strings"

// CompactUnique trims every value, drops empties and keeps the first
// occurrence of each remaining value. The result is never nil.
func CompactUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
