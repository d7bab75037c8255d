package extract

import (
	"fmt"
	"regexp"

	"github.com/roach88/segment/internal/segment"
)

// AmountHit is the result of numeric-range extraction: an operator
// from the amount set plus a formatted dollar value.
type AmountHit struct {
	Operator segment.Operator
	Value    string
	Anchor   string
}

// amountPatterns are tried in order; the first match wins. A bare
// "$N" with no comparison keyword reads as "greater than $N" - the
// dominant phrasing in practice is "carts $100" meaning carts worth
// at least that much, and the legacy pattern table treats it the
// same way.
var (
	reBetween = regexp.MustCompile(`(?i)\bbetween\s+\$?(\d+(?:\.\d+)?)\s+and\s+\$?(\d+(?:\.\d+)?)`)
	reGreater = regexp.MustCompile(`(?i)\b(?:more than|over|above|at least|greater than)\s+\$?(\d+(?:\.\d+)?)`)
	reLess    = regexp.MustCompile(`(?i)\b(?:less than|under|below|at most|fewer than)\s+\$?(\d+(?:\.\d+)?)`)
	reEquals  = regexp.MustCompile(`(?i)\b(?:equals|exactly|equal to|is)\s+\$?(\d+(?:\.\d+)?)`)
	reBare    = regexp.MustCompile(`\$(\d+(?:\.\d+)?)`)
)

// Amount extracts a numeric range from the utterance. Returns nil
// when no pattern matches.
func Amount(text string) *AmountHit {
	if m := reBetween.FindStringSubmatch(text); m != nil {
		return &AmountHit{
			Operator: segment.OpBetween,
			Value:    fmt.Sprintf("$%s-$%s", m[1], m[2]),
			Anchor:   m[0],
		}
	}
	if m := reGreater.FindStringSubmatch(text); m != nil {
		return &AmountHit{Operator: segment.OpGreaterThan, Value: "$" + m[1], Anchor: m[0]}
	}
	if m := reLess.FindStringSubmatch(text); m != nil {
		return &AmountHit{Operator: segment.OpLessThan, Value: "$" + m[1], Anchor: m[0]}
	}
	if m := reEquals.FindStringSubmatch(text); m != nil {
		return &AmountHit{Operator: segment.OpEquals, Value: "$" + m[1], Anchor: m[0]}
	}
	if m := reBare.FindStringSubmatch(text); m != nil {
		return &AmountHit{Operator: segment.OpGreaterThan, Value: "$" + m[1], Anchor: m[0]}
	}
	return nil
}
