package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/segment/internal/parser"
	"github.com/roach88/segment/internal/segment"
)

// Exchange records one turn of a scenario run.
type Exchange struct {
	Utterance           string
	Response            string
	Outcome             segment.Outcome
	New                 []segment.Condition
	Removed             []segment.Condition
	UpdatePreviousLogic segment.LogicOperator
}

// Result is a completed scenario run: the transcript plus the final
// condition list after every turn was applied.
type Result struct {
	Transcript []Exchange
	Final      []segment.Condition
}

// Run executes a scenario against a fully deterministic parser:
// sequential condition IDs and first-entry response selection, so two
// runs of the same scenario produce identical transcripts.
//
// The harness maintains the condition list exactly as the engine
// contract prescribes: retroactive logic update first, then
// removals, then appends. Expectation mismatches abort the run.
func Run(scenario *Scenario) (*Result, error) {
	p := parser.New(
		parser.WithIDGenerator(segment.NewSequenceGenerator("cond")),
		parser.WithPicker(parser.FirstPick),
	)

	var conditions []segment.Condition
	result := &Result{}

	for i, turn := range scenario.Turns {
		parsed := p.Parse(turn.Say, conditions)

		if err := checkTurn(i+1, turn, parsed); err != nil {
			return nil, err
		}

		conditions = apply(conditions, parsed)
		result.Transcript = append(result.Transcript, Exchange{
			Utterance:           turn.Say,
			Response:            parsed.Response,
			Outcome:             parsed.Outcome,
			New:                 parsed.NewConditions,
			Removed:             parsed.RemovedConditions,
			UpdatePreviousLogic: parsed.UpdatePreviousLogic,
		})
	}

	result.Final = conditions
	return result, nil
}

// apply performs the caller's side of the contract on the running
// condition list.
func apply(conditions []segment.Condition, parsed segment.ParseResult) []segment.Condition {
	if parsed.UpdatePreviousLogic != "" && len(conditions) > 0 {
		conditions[len(conditions)-1].LogicOperator = parsed.UpdatePreviousLogic
	}

	if len(parsed.RemovedConditions) > 0 {
		removed := make(map[string]bool, len(parsed.RemovedConditions))
		for _, cond := range parsed.RemovedConditions {
			removed[cond.ID] = true
		}
		kept := conditions[:0]
		for _, cond := range conditions {
			if !removed[cond.ID] {
				kept = append(kept, cond)
			}
		}
		conditions = kept
	}

	return append(conditions, parsed.NewConditions...)
}

func checkTurn(n int, turn Turn, parsed segment.ParseResult) error {
	if turn.ExpectNew != nil && len(parsed.NewConditions) != *turn.ExpectNew {
		return fmt.Errorf("turn %d (%q): expected %d new condition(s), got %d",
			n, turn.Say, *turn.ExpectNew, len(parsed.NewConditions))
	}
	if turn.ExpectRemoved != nil && len(parsed.RemovedConditions) != *turn.ExpectRemoved {
		return fmt.Errorf("turn %d (%q): expected %d removed condition(s), got %d",
			n, turn.Say, *turn.ExpectRemoved, len(parsed.RemovedConditions))
	}
	if turn.ExpectOutcome != "" && string(parsed.Outcome) != turn.ExpectOutcome {
		return fmt.Errorf("turn %d (%q): expected outcome %s, got %s",
			n, turn.Say, turn.ExpectOutcome, parsed.Outcome)
	}
	if turn.ExpectContains != "" && !strings.Contains(parsed.Response, turn.ExpectContains) {
		return fmt.Errorf("turn %d (%q): response %q does not contain %q",
			n, turn.Say, parsed.Response, turn.ExpectContains)
	}
	return nil
}
