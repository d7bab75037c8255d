// Package rules loads and compiles pattern packs: the data that
// drives the legacy whole-utterance matcher and the canned response
// pools. Packs are written in CUE; the built-in pack is embedded and
// compiled at first use, and replacement packs can be loaded from a
// directory. The parser consumes only the compiled form.
package rules

import "github.com/roach88/segment/internal/segment"

// Pattern is one legacy fallback table entry.
//
// Keywords is an ordered list of keyword groups. A group matches when
// any of its phrases occurs as a substring of the lower-cased
// utterance; the pattern matches when EVERY group matches. Patterns
// with more groups are more specific and are tried first.
type Pattern struct {
	// Name identifies the pattern within its pack.
	Name string
	// Keywords holds the AND-ed groups of OR-ed synonymous phrases.
	Keywords [][]string
	// Response is the canned acknowledgement emitted verbatim.
	Response string
	// Conditions are template conditions copied into the result with
	// fresh IDs. Template IDs and logic operators are ignored.
	Conditions []segment.Condition
}

// ResponsePools holds the canned acknowledgement strings the
// responder selects from. Single-string fields are fixed messages;
// slice fields are pools sampled by the configured picker.
type ResponsePools struct {
	Fallback      string
	AlreadyExists string
	RemovalMiss   string
	Removal       []string
	AndAddition   []string
	OrAddition    []string
	Confirmation  []string
}

// Pack is a compiled pattern pack: the legacy pattern table plus the
// response pools.
type Pack struct {
	Patterns  []Pattern
	Responses ResponsePools
}
