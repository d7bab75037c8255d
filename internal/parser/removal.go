package parser

import (
	"strings"

	"github.com/roach88/segment/internal/segment"
)

// removalKeywords signal deletion intent anywhere in the utterance.
// Removal is checked before all other parsing and short-circuits it.
var removalKeywords = []string{"remove", "delete", "cancel", "undo"}

// isRemovalRequest reports whether the utterance expresses deletion
// intent.
func isRemovalRequest(lower string) bool {
	for _, kw := range removalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// removalTargets maps a mention keyword to the fields it selects.
// Checked in declaration order; the first keyword present wins.
var removalTargets = []struct {
	keyword string
	fields  []segment.Field
}{
	{"purchase", []segment.Field{segment.FieldShopifyPurchase}},
	{"bought", []segment.Field{segment.FieldShopifyPurchase}},
	{"email", []segment.Field{segment.FieldEmailReceived}},
	{"vip", []segment.Field{segment.FieldCustomerTag}},
	{"tag", []segment.Field{segment.FieldCustomerTag}},
	{"cart", []segment.Field{segment.FieldCartValue, segment.FieldCartAbandoned}},
	{"location", []segment.Field{segment.FieldLocation}},
	{"subscriber", []segment.Field{segment.FieldNewsletterSubscriber}},
	{"newsletter", []segment.Field{segment.FieldNewsletterSubscriber}},
}

// resolveRemoval selects the existing conditions the utterance asks
// to delete.
//
// A field keyword selects every existing condition with a mapped
// field - possibly none, which the orchestrator reports as a removal
// miss. With no keyword at all, the most recently added condition is
// removed. With no existing conditions, the removal set is empty.
func resolveRemoval(lower string, existing []segment.Condition) []segment.Condition {
	for _, target := range removalTargets {
		if !strings.Contains(lower, target.keyword) {
			continue
		}
		var selected []segment.Condition
		for _, cond := range existing {
			for _, f := range target.fields {
				if cond.Field == f {
					selected = append(selected, cond)
					break
				}
			}
		}
		return selected
	}

	if len(existing) > 0 {
		return []segment.Condition{existing[len(existing)-1]}
	}
	return nil
}
