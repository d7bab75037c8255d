// Package parser turns a free-text utterance describing a customer
// segment criterion into structured filter conditions.
//
// The pipeline is fixed: removal check (short-circuits), entity
// composition (primary path), legacy pattern matching (fallback),
// duplicate suppression, logic-operator detection, response
// assembly. Every path terminates in a valid ParseResult; the engine
// has no error returns and no retained state, so one Parser can be
// shared by any number of goroutines.
package parser

import (
	"strings"

	"github.com/roach88/segment/internal/rules"
	"github.com/roach88/segment/internal/segment"
)

// Parser is the natural-language to condition compiler. Construct
// with New; the zero value is not usable.
type Parser struct {
	patterns []rules.Pattern // most-specific-first
	resp     *responder
	ids      segment.IDGenerator
}

// Option configures a Parser.
type Option func(*options)

type options struct {
	pack *rules.Pack
	ids  segment.IDGenerator
	pick Picker
}

// WithPack replaces the built-in pattern pack (legacy pattern table
// and response pools).
func WithPack(pack *rules.Pack) Option {
	return func(o *options) { o.pack = pack }
}

// WithIDGenerator replaces the UUIDv7 condition ID generator. Tests
// use segment.NewSequenceGenerator for readable, stable IDs.
func WithIDGenerator(ids segment.IDGenerator) Option {
	return func(o *options) { o.ids = ids }
}

// WithPicker replaces the random response-pool picker. Tests pass
// FirstPick to pin pool selection.
func WithPicker(pick Picker) Option {
	return func(o *options) { o.pick = pick }
}

// FirstPick always selects the first pool entry. It makes response
// text deterministic for tests and golden transcripts.
func FirstPick(int) int { return 0 }

// New creates a Parser. Defaults: built-in pattern pack, UUIDv7 IDs,
// randomized response selection.
func New(opts ...Option) *Parser {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.pack == nil {
		o.pack = rules.Builtin()
	}
	if o.ids == nil {
		o.ids = segment.UUIDv7Generator{}
	}
	return &Parser{
		patterns: sortPatterns(o.pack.Patterns),
		resp:     newResponder(o.pack.Responses, o.pick),
		ids:      o.ids,
	}
}

// Parse compiles one utterance against the caller's existing
// conditions. It never fails: unmatched input yields the fallback
// response with empty condition lists. The existing slice is read
// only; removed conditions are returned by value for the caller to
// delete from its own store.
func (p *Parser) Parse(utterance string, existing []segment.Condition) segment.ParseResult {
	result := p.parse(utterance, existing)
	// The contract promises lists, never null.
	if result.NewConditions == nil {
		result.NewConditions = []segment.Condition{}
	}
	if result.RemovedConditions == nil {
		result.RemovedConditions = []segment.Condition{}
	}
	return result
}

func (p *Parser) parse(utterance string, existing []segment.Condition) segment.ParseResult {
	trimmed := strings.TrimSpace(utterance)
	lower := strings.ToLower(trimmed)
	if trimmed == "" {
		return p.noMatch()
	}

	if isRemovalRequest(lower) {
		return p.parseRemoval(lower, existing)
	}

	drafts := composeEntities(trimmed)
	if len(drafts) > 0 {
		return p.assembleComposed(lower, drafts, existing)
	}

	if pattern := matchPattern(p.patterns, lower); pattern != nil {
		return p.assembleLegacy(lower, pattern, existing)
	}

	return p.noMatch()
}

// parseRemoval terminates the pipeline regardless of whether a target
// was found, distinguishing "removed" from "nothing to remove".
func (p *Parser) parseRemoval(lower string, existing []segment.Condition) segment.ParseResult {
	removed := resolveRemoval(lower, existing)
	if len(removed) == 0 {
		return segment.ParseResult{
			Response: p.resp.removalMiss(),
			Outcome:  segment.OutcomeRemovalMiss,
		}
	}
	return segment.ParseResult{
		Response:          p.resp.removal(),
		RemovedConditions: removed,
		Outcome:           segment.OutcomeRemoved,
	}
}

// assembleComposed finishes the primary path: duplicate suppression,
// ID assignment, logic verdict and response text.
func (p *Parser) assembleComposed(lower string, drafts []draft, existing []segment.Condition) segment.ParseResult {
	candidates := make([]segment.Condition, len(drafts))
	for i, d := range drafts {
		candidates[i] = d.cond
	}

	kept := filterDuplicates(candidates, existing)
	if len(kept) == 0 {
		return segment.ParseResult{
			Response: p.resp.alreadyExists(),
			Outcome:  segment.OutcomeDuplicate,
		}
	}

	fragments := make([]string, 0, len(drafts))
	for _, d := range drafts {
		if containsCondition(kept, d.cond) {
			fragments = append(fragments, d.fragment)
		}
	}

	logic := detectLogic(lower)
	prefix := p.resp.andAddition()
	if logic == segment.LogicOr && len(existing) > 0 {
		prefix = p.resp.orAddition()
	}

	return segment.ParseResult{
		Response:            prefix + " " + joinFragments(fragments),
		NewConditions:       p.assignIDs(kept),
		UpdatePreviousLogic: previousLogic(logic, existing),
		Outcome:             segment.OutcomeAdded,
	}
}

// assembleLegacy finishes the fallback path with the matched
// pattern's template conditions and canned response.
func (p *Parser) assembleLegacy(lower string, pattern *rules.Pattern, existing []segment.Condition) segment.ParseResult {
	kept := filterDuplicates(pattern.Conditions, existing)
	if len(kept) == 0 {
		return segment.ParseResult{
			Response: p.resp.alreadyExists(),
			Outcome:  segment.OutcomeDuplicate,
		}
	}

	logic := detectLogic(lower)
	response := pattern.Response
	if logic == segment.LogicOr && len(existing) > 0 {
		response = rewriteForOr(response)
	}

	return segment.ParseResult{
		Response:            response,
		NewConditions:       p.assignIDs(kept),
		UpdatePreviousLogic: previousLogic(logic, existing),
		Outcome:             segment.OutcomeAdded,
	}
}

// rewriteForOr adjusts a canned "Added:" acknowledgement when the new
// batch joins the segment with OR.
func rewriteForOr(response string) string {
	if rest, ok := strings.CutPrefix(response, "Added:"); ok {
		return "Added with OR:" + rest
	}
	return response
}

// assignIDs copies the kept conditions with fresh IDs and a default
// AND internal join. Template IDs never leak into results.
func (p *Parser) assignIDs(conditions []segment.Condition) []segment.Condition {
	out := make([]segment.Condition, len(conditions))
	for i, c := range conditions {
		c.ID = p.ids.NewID()
		if c.LogicOperator == "" {
			c.LogicOperator = segment.LogicAnd
		}
		out[i] = c
	}
	return out
}

// previousLogic is the retroactive verdict for the boundary between
// the last existing condition and the new batch. With nothing to
// rejoin it stays empty.
func previousLogic(logic segment.LogicOperator, existing []segment.Condition) segment.LogicOperator {
	if len(existing) == 0 {
		return ""
	}
	return logic
}

func (p *Parser) noMatch() segment.ParseResult {
	return segment.ParseResult{
		Response: p.resp.fallback(),
		Outcome:  segment.OutcomeNoMatch,
	}
}

func containsCondition(conditions []segment.Condition, c segment.Condition) bool {
	for _, other := range conditions {
		if other.Same(c) {
			return true
		}
	}
	return false
}
