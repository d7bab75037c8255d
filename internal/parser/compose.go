package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/roach88/segment/internal/extract"
	"github.com/roach88/segment/internal/segment"
)

// Per-domain default time windows applied when the utterance mentions
// the activity but no duration.
const (
	defaultPurchaseWindow = "Last 30 days"
	defaultEmailWindow    = "Last 7 days"
	defaultCartWindow     = "Last 7 days"
)

// Domain trigger keywords. Bare substring/word presence; the
// extractors fill in the details once a domain is triggered.
var (
	rePurchaseTrigger = regexp.MustCompile(`(?i)\b(?:purchased?|purchases|bought|ordered?|orders|shopped|buys?|buying)\b`)
	reEmailTrigger    = regexp.MustCompile(`(?i)\bemail(?:ed|s)?\b`)
	reCartTrigger     = regexp.MustCompile(`(?i)\b(?:carts?|checkout|abandon(?:ed|ers?|ment)?)\b`)
	reSubTrigger      = regexp.MustCompile(`(?i)\b(?:subscribers?|subscribed|subscriptions?|newsletter)\b`)
	reAbandonMention  = regexp.MustCompile(`(?i)\babandon`)
)

// draft is a condition candidate plus the response fragment
// describing it. IDs are assigned later by the orchestrator.
type draft struct {
	cond     segment.Condition
	fragment string
}

// composeEntities evaluates the six domain checks independently and
// in fixed order: location, tag, purchase, email, cart, subscriber.
// Each positive check contributes one or more drafts; a single
// utterance can legitimately produce up to six conditions. Order is
// preserved so display order matches mention order conventions.
func composeEntities(text string) []draft {
	var drafts []draft
	drafts = append(drafts, composeLocation(text)...)
	drafts = append(drafts, composeTag(text)...)
	drafts = append(drafts, composePurchase(text)...)
	drafts = append(drafts, composeEmail(text)...)
	drafts = append(drafts, composeCart(text)...)
	drafts = append(drafts, composeSubscriber(text)...)
	return drafts
}

func composeLocation(text string) []draft {
	hit := extract.Locations(text)
	if hit == nil {
		return nil
	}
	op := segment.OpIs
	verb := "located in"
	if extract.Negated(text, hit.Anchor) {
		op = segment.OpIsNot
		verb = "not located in"
	}

	drafts := make([]draft, 0, len(hit.Locations))
	for _, loc := range hit.Locations {
		drafts = append(drafts, draft{
			cond: segment.Condition{
				Field:         segment.FieldLocation,
				Operator:      op,
				Value:         loc,
				LogicOperator: segment.LogicAnd,
			},
			fragment: fmt.Sprintf("customers %s %s", verb, loc),
		})
	}
	return drafts
}

func composeTag(text string) []draft {
	hit := extract.Tag(text)
	if hit == nil || hit.Field != segment.FieldCustomerTag {
		// Synonym hits for other fields belong to their own checks.
		return nil
	}
	op := segment.OpContains
	fragment := "customers tagged " + hit.Value
	if extract.Negated(text, hit.Anchor) {
		op = segment.OpNotContains
		fragment = "customers not tagged " + hit.Value
	}
	return []draft{{
		cond: segment.Condition{
			Field:         segment.FieldCustomerTag,
			Operator:      op,
			Value:         hit.Value,
			LogicOperator: segment.LogicAnd,
		},
		fragment: fragment,
	}}
}

func composePurchase(text string) []draft {
	m := rePurchaseTrigger.FindString(text)
	if m == "" {
		return nil
	}
	window, ok := extract.TimeRange(text)
	if !ok {
		window = defaultPurchaseWindow
	}
	op := segment.OpIs
	fragment := "customers who purchased in " + lowerFirst(window)
	if extract.Negated(text, m) {
		op = segment.OpIsNot
		fragment = "customers without purchases in " + lowerFirst(window)
	}
	return []draft{{
		cond: segment.Condition{
			Field:         segment.FieldShopifyPurchase,
			Operator:      op,
			Value:         "Any",
			TimeRange:     window,
			LogicOperator: segment.LogicAnd,
		},
		fragment: fragment,
	}}
}

func composeEmail(text string) []draft {
	m := reEmailTrigger.FindString(text)
	if m == "" {
		return nil
	}
	window, ok := extract.TimeRange(text)
	if !ok {
		window = defaultEmailWindow
	}
	op := segment.OpIs
	fragment := "customers emailed in " + lowerFirst(window)
	if extract.Negated(text, m) {
		op = segment.OpIsNot
		fragment = "customers not emailed in " + lowerFirst(window)
	}
	return []draft{{
		cond: segment.Condition{
			Field:         segment.FieldEmailReceived,
			Operator:      op,
			Value:         "Any",
			TimeRange:     window,
			LogicOperator: segment.LogicAnd,
		},
		fragment: fragment,
	}}
}

// composeCart branches on whether a numeric range is present: an
// amount makes this a Cart Value condition, a bare abandonment
// mention a Cart Abandoned one, anything else is not cart intent
// worth a condition.
func composeCart(text string) []draft {
	m := reCartTrigger.FindString(text)
	if m == "" {
		return nil
	}
	window, ok := extract.TimeRange(text)
	if !ok {
		window = defaultCartWindow
	}

	if amount := extract.Amount(text); amount != nil {
		return []draft{{
			cond: segment.Condition{
				Field:         segment.FieldCartValue,
				Operator:      amount.Operator,
				Value:         amount.Value,
				TimeRange:     window,
				LogicOperator: segment.LogicAnd,
			},
			fragment: fmt.Sprintf("customers with cart value %s %s", amount.Operator, amount.Value),
		}}
	}

	if !reAbandonMention.MatchString(text) {
		return nil
	}
	value := "True"
	fragment := "customers who abandoned their cart"
	if extract.Negated(text, m) {
		value = "False"
		fragment = "customers who did not abandon their cart"
	}
	return []draft{{
		cond: segment.Condition{
			Field:         segment.FieldCartAbandoned,
			Operator:      segment.OpIs,
			Value:         value,
			TimeRange:     window,
			LogicOperator: segment.LogicAnd,
		},
		fragment: fragment,
	}}
}

func composeSubscriber(text string) []draft {
	m := reSubTrigger.FindString(text)
	if m == "" {
		return nil
	}
	value := "True"
	fragment := "newsletter subscribers"
	if extract.Negated(text, m) {
		value = "False"
		fragment = "customers not subscribed to the newsletter"
	}
	return []draft{{
		cond: segment.Condition{
			Field:         segment.FieldNewsletterSubscriber,
			Operator:      segment.OpIs,
			Value:         value,
			LogicOperator: segment.LogicAnd,
		},
		fragment: fragment,
	}}
}

// lowerFirst lowercases the first rune: "Last 30 days" reads as
// "last 30 days" inside a sentence.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// joinFragments builds the body of an acknowledgement from the
// accumulated fragments, capitalizing the first letter.
func joinFragments(fragments []string) string {
	joined := strings.Join(fragments, "; ")
	if joined == "" {
		return joined
	}
	runes := []rune(joined)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
