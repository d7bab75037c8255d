package parser

import "github.com/roach88/segment/internal/segment"

// filterDuplicates drops candidates that duplicate an existing
// condition or an earlier candidate in the same batch, preserving
// order. Equality is Condition.Same: field + operator + value, with
// TimeRange deliberately excluded, so a candidate differing from an
// existing condition only by time window is still dropped.
func filterDuplicates(candidates, existing []segment.Condition) []segment.Condition {
	kept := make([]segment.Condition, 0, len(candidates))
	for _, cand := range candidates {
		if duplicatesAny(cand, existing) || duplicatesAny(cand, kept) {
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}

func duplicatesAny(cand segment.Condition, against []segment.Condition) bool {
	for _, other := range against {
		if cand.Same(other) {
			return true
		}
	}
	return false
}
