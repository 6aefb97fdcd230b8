package search

import "strings"

// NormalizeKeywords splits comma-joined keywords, trims whitespace, drops
// empties and deduplicates while preserving first-seen order. The HH API has
// no OR syntax, so each resulting keyword is searched independently.
func NormalizeKeywords(raw []string) []string {
	var split []string
	for _, kw := range raw {
		for _, part := range strings.Split(kw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				split = append(split, trimmed)
			}
		}
	}

	seen := make(map[string]struct{}, len(split))
	unique := make([]string, 0, len(split))
	for _, kw := range split {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		unique = append(unique, kw)
	}
	return unique
}
