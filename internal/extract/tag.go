package extract

import (
	"regexp"

	"github.com/roach88/segment/internal/lexicon"
	"github.com/roach88/segment/internal/segment"
)

// TagHit is the result of tag/synonym extraction. Field is usually
// Customer Tag but synonym-table entries can point at other fields
// ("subscriber" implies Newsletter Subscriber); callers filter for
// the field they own.
type TagHit struct {
	Field  segment.Field
	Value  string
	Anchor string
}

// reTag matches explicit tag phrasing: "tagged as wholesale",
// "tag is 'vip'", "tagged with loyal".
var reTag = regexp.MustCompile(`(?i)\btag(?:ged)?\s*(?:is|as|with)?\s*['"]?([a-z0-9_-]+)['"]?`)

// Tag extracts a {field, value} hit from the utterance. Explicit
// "tag ..." phrasing wins because it names the exact tag; the
// field-synonym table covers bare adjectives ("vip", "wholesale").
// Returns nil when neither strategy matches.
func Tag(text string) *TagHit {
	if m := reTag.FindStringSubmatch(text); m != nil {
		token := m[1]
		// The optional filler words are part of the keyword, not the tag.
		if token != "is" && token != "as" && token != "with" {
			return &TagHit{Field: segment.FieldCustomerTag, Value: token, Anchor: m[0]}
		}
	}

	syn, phrase, ok := lexicon.LookupFieldSynonym(text)
	if !ok {
		return nil
	}
	return &TagHit{
		Field:  segment.Field(syn.Field),
		Value:  syn.Value,
		Anchor: phrase,
	}
}
