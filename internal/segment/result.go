package segment

// ParseResult is the engine's sole output. The caller owns the running
// condition list and is responsible for applying the result in order:
//
//  1. If UpdatePreviousLogic is non-empty, set the logic operator of
//     the LAST existing condition to it.
//  2. Delete every condition in RemovedConditions from the list.
//  3. Append NewConditions in order.
//  4. Display Response verbatim.
//
// Outcome reports which path produced the result; callers that only
// splice conditions can ignore it.
type ParseResult struct {
	Response          string        `json:"aiResponse"`
	NewConditions     []Condition   `json:"newConditions"`
	RemovedConditions []Condition   `json:"removedConditions"`
	// UpdatePreviousLogic is empty when there is no prior condition to
	// rejoin; otherwise AND or OR.
	UpdatePreviousLogic LogicOperator `json:"updatePreviousLogic,omitempty"`
	Outcome             Outcome       `json:"outcome"`
}

// Outcome names the terminal state the parse reached. Every parse
// terminates in exactly one of these; there are no error paths.
type Outcome string

const (
	// OutcomeAdded: one or more new conditions were produced.
	OutcomeAdded Outcome = "added"
	// OutcomeRemoved: removal intent matched existing conditions.
	OutcomeRemoved Outcome = "removed"
	// OutcomeRemovalMiss: removal intent with nothing to remove.
	OutcomeRemovalMiss Outcome = "removal_miss"
	// OutcomeDuplicate: everything extracted already exists.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeNoMatch: the utterance matched nothing.
	OutcomeNoMatch Outcome = "no_match"
)
