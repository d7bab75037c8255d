// Package extract provides the pure lexical extractors the parser
// composes: location lists, numeric ranges, time ranges, tag hits and
// negation scoping. Every extractor is a pure function from text to a
// typed fragment (or a miss); none of them touch process state.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/segment/internal/lexicon"
)

// locationTemplates are tried in order; the first capture wins.
//
//  1. "from/in/located in <phrase>" terminated by a relative clause or
//     end of utterance. "and"/"or" do NOT terminate: they separate
//     places in a list ("from UK or Germany") and are handled by the
//     splitter below.
//  2. "<phrase> customers/users" anchored at the start.
//  3. "customers/users from/in <phrase>" running to the end.
var locationTemplates = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:located in|from|in)\s+([a-z][a-z0-9 ,/&'-]*?)(?:\s+(?:who|that|which|but)\b|[.!?;]|$)`),
	regexp.MustCompile(`(?i)^([a-z][a-z0-9 ,/&'-]*?)\s+(?:customers|users|shoppers|buyers)\b`),
	regexp.MustCompile(`(?i)\b(?:customers|users)\s+(?:from|in)\s+([a-z][a-z0-9 ,/&'-]*)$`),
}

// locationSeparators split a captured phrase into individual tokens.
// Listed longest-first so " or " and " and " win over bare delimiters.
var locationSeparators = []string{" or ", " and ", "/", ","}

// reNonPlaceToken recognizes tokens that are really time phrases or
// activity mentions the location templates captured by accident
// ("in last 30 days", "from UK and abandoned their cart").
var reNonPlaceToken = regexp.MustCompile(`(?i)^(?:last|past|this|next)\b|^\d|\b(?:day|days|week|weeks|month|months|quarter|year|years|purchased?|purchases|bought|ordered?|orders|emails?|emailed|carts?|checkout|abandoned?|subscribed?|subscribers?|newsletter|tag|tags|tagged|spent)\b`)

var titleCaser = cases.Title(language.English)

// LocationHit is the result of location extraction: one or more
// cleaned, expanded location names plus the raw captured phrase used
// as the negation anchor.
type LocationHit struct {
	Locations []string
	Anchor    string
}

// Locations isolates a candidate location phrase from the utterance,
// strips stop words, splits it into tokens and expands each through
// the abbreviation and regional-group tables. Region names are kept
// as-is (title-cased) rather than exploded into their member country
// list; lexicon.RegionCountries exposes the expansion for callers
// that need it. Returns nil when no template matches or the cleaned
// phrase is empty.
func Locations(text string) *LocationHit {
	for _, re := range locationTemplates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		locations := cleanLocationPhrase(m[1])
		if len(locations) == 0 {
			continue
		}
		return &LocationHit{Locations: locations, Anchor: m[1]}
	}
	return nil
}

// cleanLocationPhrase strips stop words, splits on the separator set
// and expands each surviving token.
func cleanLocationPhrase(phrase string) []string {
	words := strings.Fields(strings.ToLower(phrase))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if isLocationStopWord(strings.Trim(w, ",")) && !strings.ContainsAny(w, ",/") {
			continue
		}
		kept = append(kept, w)
	}
	cleaned := strings.Join(kept, " ")

	tokens := splitLocations(cleaned)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || reNonPlaceToken.MatchString(tok) {
			continue
		}
		out = append(out, expandLocation(tok))
	}
	return out
}

func isLocationStopWord(w string) bool {
	for _, stop := range lexicon.LocationStopWords {
		if w == stop {
			return true
		}
	}
	return false
}

func splitLocations(phrase string) []string {
	tokens := []string{phrase}
	for _, sep := range locationSeparators {
		var next []string
		for _, tok := range tokens {
			next = append(next, strings.Split(tok, sep)...)
		}
		tokens = next
	}
	return tokens
}

// expandLocation resolves a single token: abbreviation table first,
// then regional groups, then plain title-casing for unknown places.
func expandLocation(token string) string {
	if full, ok := lexicon.ExpandAbbreviation(token); ok {
		return full
	}
	// Regions (and unknown places) keep their own name, title-cased.
	// The member-country list stays lookup-only via RegionCountries.
	return titleCaser.String(token)
}
