package extract

import (
	"regexp"
	"strings"

	"github.com/roach88/segment/internal/lexicon"
)

// negationWindow is the maximum character distance between a negation
// cue and the entity anchor for the cue to apply to that entity.
const negationWindow = 30

// negationRes holds one word-bounded pattern per negation cue,
// compiled once at package init.
var negationRes = compileNegationCues()

func compileNegationCues() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(lexicon.NegationCues))
	for i, cue := range lexicon.NegationCues {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(cue) + `\b`)
	}
	return res
}

// Negated reports whether the entity anchored at the given substring
// is negated.
//
// With an empty anchor (or an anchor not present in the utterance)
// any negation cue anywhere negates. With an anchor, only cues whose
// character offset lies within negationWindow characters of the
// anchor's offset count.
//
// This is a nearest-anchor heuristic, not syntactic scoping: negation
// far from its target, or one cue shared by several entities, is
// resolved by distance alone. That imprecision is a documented
// property of the engine, kept deliberately rather than "fixed".
func Negated(text, anchor string) bool {
	lower := strings.ToLower(text)
	anchorOff := -1
	if anchor != "" {
		anchorOff = strings.Index(lower, strings.ToLower(anchor))
	}

	for _, re := range negationRes {
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			if anchorOff < 0 {
				return true
			}
			if abs(loc[0]-anchorOff) <= negationWindow {
				return true
			}
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
