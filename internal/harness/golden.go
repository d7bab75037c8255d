package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/segment/internal/segment"
)

// AssertGolden renders a scenario result as stable JSON and compares it
// against testdata/golden/<name>.golden. Run the tests with -update to
// rewrite the fixtures.
func AssertGolden(t *testing.T, name string, scenario *Scenario, result *Result) {
	t.Helper()

	data, err := segment.MarshalStable(snapshot(scenario, result))
	if err != nil {
		t.Fatalf("marshal scenario snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// snapshot flattens a run into the plain value set MarshalStable
// accepts. Empty optional fields are omitted rather than emitted as
// empty strings so that goldens stay readable.
func snapshot(scenario *Scenario, result *Result) map[string]any {
	turns := make([]any, 0, len(result.Transcript))
	for _, ex := range result.Transcript {
		turn := map[string]any{
			"say":      ex.Utterance,
			"response": ex.Response,
			"outcome":  string(ex.Outcome),
			"new":      conditionValues(ex.New),
			"removed":  conditionValues(ex.Removed),
		}
		if ex.UpdatePreviousLogic != "" {
			turn["update_previous_logic"] = string(ex.UpdatePreviousLogic)
		}
		turns = append(turns, turn)
	}

	return map[string]any{
		"scenario":         scenario.Name,
		"turns":            turns,
		"final_conditions": conditionValues(result.Final),
	}
}

func conditionValues(conds []segment.Condition) []any {
	out := make([]any, 0, len(conds))
	for _, c := range conds {
		v := map[string]any{
			"id":            c.ID,
			"field":         string(c.Field),
			"operator":      string(c.Operator),
			"value":         c.Value,
			"logicOperator": string(c.LogicOperator),
		}
		if c.TimeRange != "" {
			v["timeRange"] = c.TimeRange
		}
		out = append(out, v)
	}
	return out
}
