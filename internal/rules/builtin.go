package rules

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed builtin.cue
var builtinCUE string

var builtinOnce = sync.OnceValue(compileBuiltin)

// Builtin returns the embedded pattern pack, compiled on first use.
// The returned pack is shared and must be treated as read-only.
func Builtin() *Pack {
	return builtinOnce()
}

// compileBuiltin panics on error: the embedded pack is part of the
// build and failing to compile it is a bug, not a runtime condition.
func compileBuiltin() *Pack {
	ctx := cuecontext.New()
	value := ctx.CompileString(builtinCUE, cue.Filename("builtin.cue"))
	if err := value.Err(); err != nil {
		panic(fmt.Sprintf("rules: embedded pack does not compile: %v", err))
	}

	pack := &Pack{}

	patternsVal := value.LookupPath(cue.ParsePath("pattern"))
	iter, err := patternsVal.Fields()
	if err != nil {
		panic(fmt.Sprintf("rules: embedded pack: %v", err))
	}
	for iter.Next() {
		p, err := CompilePattern(iter.Label(), iter.Value())
		if err != nil {
			panic(fmt.Sprintf("rules: embedded pattern %q: %v", iter.Label(), err))
		}
		pack.Patterns = append(pack.Patterns, *p)
	}

	pools, err := CompileResponses(value.LookupPath(cue.ParsePath("responses")), ResponsePools{})
	if err != nil {
		panic(fmt.Sprintf("rules: embedded responses: %v", err))
	}
	pack.Responses = *pools

	return pack
}
