package parser

import (
	"sort"
	"strings"

	"github.com/roach88/segment/internal/rules"
)

// sortPatterns returns the pattern table ordered most-specific-first:
// descending keyword-group count, declaration order for ties. The
// input is not mutated; evaluation order must never depend on caller
// slice reuse.
func sortPatterns(patterns []rules.Pattern) []rules.Pattern {
	sorted := make([]rules.Pattern, len(patterns))
	copy(sorted, patterns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Keywords) > len(sorted[j].Keywords)
	})
	return sorted
}

// matchPattern finds the first pattern whose every keyword group has
// at least one phrase present in the lower-cased utterance. The
// patterns slice must already be in most-specific-first order.
// Returns nil when nothing matches.
func matchPattern(patterns []rules.Pattern, lower string) *rules.Pattern {
	for i := range patterns {
		if patternMatches(&patterns[i], lower) {
			return &patterns[i]
		}
	}
	return nil
}

func patternMatches(p *rules.Pattern, lower string) bool {
	for _, group := range p.Keywords {
		if !groupMatches(group, lower) {
			return false
		}
	}
	return true
}

func groupMatches(group []string, lower string) bool {
	for _, phrase := range group {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
