package parser

import (
	"regexp"
	"strings"

	"github.com/roach88/segment/internal/segment"
)

// orIndicators classify an utterance as OR continuation. Checked
// against the lower-cased, trimmed utterance; anything that matches
// none of them is AND.
var orIndicators = []*regexp.Regexp{
	regexp.MustCompile(`^or\s`),
	regexp.MustCompile(`\bor customers\b`),
	regexp.MustCompile(`\bor anyone\b`),
	regexp.MustCompile(`\bor those\b`),
	regexp.MustCompile(`\bor people\b`),
	regexp.MustCompile(`\bor users\b`),
	regexp.MustCompile(`\bplus customers\b`),
	regexp.MustCompile(`\bplus anyone\b`),
	regexp.MustCompile(`\balso include\b`),
	regexp.MustCompile(`\bincluding those\b`),
	regexp.MustCompile(`\binclude also\b`),
	regexp.MustCompile(`\beither.*or\b`),
	regexp.MustCompile(`\balternatively\b`),
}

// detectLogic classifies the whole utterance as AND or OR
// continuation. The verdict describes how the new batch joins what
// already exists; it never reorders the batch internally.
func detectLogic(utterance string) segment.LogicOperator {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	for _, re := range orIndicators {
		if re.MatchString(lower) {
			return segment.LogicOr
		}
	}
	return segment.LogicAnd
}
