// Package lexicon holds the static normalization tables the parser
// consults: abbreviation and regional-group expansion, time-phrase
// normalization, field synonyms, negation cues and location stop
// words. All tables are read-only and all lookups are exact,
// case-insensitive substring or equality checks. There is no fuzzy
// matching: unknown phrases fall through to the next extraction
// strategy rather than being guessed at.
package lexicon

import "strings"

// abbreviations maps short country/region codes to canonical names.
// Keys are lower-case; look up with ExpandAbbreviation.
var abbreviations = map[string]string{
	"uk":      "United Kingdom",
	"us":      "United States",
	"usa":     "United States",
	"america": "United States",
	"uae":     "United Arab Emirates",
	"eu":      "Europe",
	"nz":      "New Zealand",
	"aus":     "Australia",
}

// regionCountries maps a regional-group name to its canonical member
// countries. The location extractor keeps the region name itself as
// the display value; the member list is exposed for callers that need
// the expansion.
var regionCountries = map[string]string{
	"asia":          "Japan, China, India, Singapore, South Korea, Thailand",
	"europe":        "United Kingdom, Germany, France, Italy, Spain, Netherlands",
	"north america": "United States, Canada, Mexico",
	"scandinavia":   "Sweden, Norway, Denmark, Finland",
	"latin america": "Brazil, Mexico, Argentina, Colombia, Chile",
	"middle east":   "United Arab Emirates, Saudi Arabia, Israel, Qatar",
	"oceania":       "Australia, New Zealand",
}

// ExpandAbbreviation resolves a country/region code to its canonical
// name. Returns ("", false) when the token is not an abbreviation.
func ExpandAbbreviation(token string) (string, bool) {
	full, ok := abbreviations[strings.ToLower(strings.TrimSpace(token))]
	return full, ok
}

// IsRegion reports whether the token names one of the regional groups.
func IsRegion(token string) bool {
	_, ok := regionCountries[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// RegionCountries returns the comma-joined canonical country list for
// a regional group. Returns ("", false) for unknown regions.
func RegionCountries(region string) (string, bool) {
	countries, ok := regionCountries[strings.ToLower(strings.TrimSpace(region))]
	return countries, ok
}

// TimePhrase pairs a colloquial duration phrase with its canonical
// normalized form.
type TimePhrase struct {
	Phrase    string
	Canonical string
}

// timePhrases is checked by substring containment in declaration
// order, so longer or more specific phrases MUST come before phrases
// they contain ("two months" before "month", "90 days" before "9 days"
// is not an issue because matching is substring, not prefix).
var timePhrases = []TimePhrase{
	{"72 hours", "Last 3 days"},
	{"three days", "Last 3 days"},
	{"3 days", "Last 3 days"},
	{"fortnight", "Last 14 days"},
	{"two weeks", "Last 14 days"},
	{"2 weeks", "Last 14 days"},
	{"last week", "Last 7 days"},
	{"past week", "Last 7 days"},
	{"this week", "Last 7 days"},
	{"7 days", "Last 7 days"},
	{"a week", "Last 7 days"},
	{"week", "Last 7 days"},
	{"twelve months", "Last 365 days"},
	{"12 months", "Last 365 days"},
	{"two months", "Last 60 days"},
	{"2 months", "Last 60 days"},
	{"60 days", "Last 60 days"},
	{"three months", "Last 90 days"},
	{"3 months", "Last 90 days"},
	{"90 days", "Last 90 days"},
	{"last quarter", "Last 90 days"},
	{"quarter", "Last 90 days"},
	{"this month", "This month"},
	{"last month", "Last 30 days"},
	{"past month", "Last 30 days"},
	{"30 days", "Last 30 days"},
	{"a month", "Last 30 days"},
	{"month", "Last 30 days"},
	{"last year", "Last 365 days"},
	{"past year", "Last 365 days"},
	{"a year", "Last 365 days"},
	{"year", "Last 365 days"},
}

// NormalizeTimePhrase scans the lower-cased text for a known duration
// phrase and returns its canonical "Last N days" form. Returns
// ("", false) when no table phrase occurs in the text.
func NormalizeTimePhrase(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, tp := range timePhrases {
		if strings.Contains(lower, tp.Phrase) {
			return tp.Canonical, true
		}
	}
	return "", false
}

// FieldSynonym maps a bare adjective/noun to the {field, value} pair
// it implies.
type FieldSynonym struct {
	Field string
	Value string
}

// Field names used in the synonym table. Mirrors the segment field
// catalogue; kept as strings here so lexicon stays dependency-free.
const (
	synonymFieldTag        = "Customer Tag"
	synonymFieldSubscriber = "Newsletter Subscriber"
	synonymFieldStatus     = "Customer Status"
)

// fieldSynonyms is checked by substring containment in declaration
// order; multi-word phrases come before single words they contain.
var fieldSynonyms = []struct {
	Phrase string
	Hit    FieldSynonym
}{
	{"high-value", FieldSynonym{synonymFieldTag, "VIP"}},
	{"high value", FieldSynonym{synonymFieldTag, "VIP"}},
	{"vip", FieldSynonym{synonymFieldTag, "VIP"}},
	{"premium", FieldSynonym{synonymFieldTag, "Premium"}},
	{"wholesale", FieldSynonym{synonymFieldTag, "Wholesale"}},
	{"loyal", FieldSynonym{synonymFieldTag, "Loyal"}},
	{"subscriber", FieldSynonym{synonymFieldSubscriber, "True"}},
	{"inactive", FieldSynonym{synonymFieldStatus, "Inactive"}},
	{"active", FieldSynonym{synonymFieldStatus, "Active"}},
}

// LookupFieldSynonym scans the lower-cased text for a known synonym
// and returns the implied {field, value} plus the phrase that
// matched. First table entry wins.
func LookupFieldSynonym(text string) (FieldSynonym, string, bool) {
	lower := strings.ToLower(text)
	for _, entry := range fieldSynonyms {
		if strings.Contains(lower, entry.Phrase) {
			return entry.Hit, entry.Phrase, true
		}
	}
	return FieldSynonym{}, "", false
}

// NegationCues are the phrases that signal negation of an entity.
// Scoping is positional, not grammatical; see extract.Negated.
var NegationCues = []string{
	"not",
	"exclude",
	"excluding",
	"except",
	"without",
	"doesn't",
	"don't",
	"didn't",
	"haven't",
	"hasn't",
	"never",
	"no longer",
}

// LocationStopWords are stripped from a candidate location phrase
// before it is split into tokens. They cover connective words the
// location regexes may capture along with the place name, plus
// qualifiers that belong to other extractors.
var LocationStopWords = []string{
	"who", "that", "which", "the", "all", "any", "only",
	"vip", "premium", "customers", "users", "people", "located",
}
