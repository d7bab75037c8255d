// Package harness runs scripted conversations against the parser the
// way a real caller would: it owns the running condition list,
// applies every ParseResult in contract order and records the full
// exchange. Scenarios are YAML files; transcripts can be checked
// against golden files for exact-output regression coverage.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted conversation.
type Scenario struct {
	// Name uniquely identifies the scenario; golden files are named
	// after it.
	Name string `yaml:"name"`

	// Description explains what the scenario covers.
	Description string `yaml:"description,omitempty"`

	// Turns are the utterances in order, each with optional
	// expectations checked during the run.
	Turns []Turn `yaml:"turns"`
}

// Turn is one utterance plus optional expectations. Nil expectations
// are not checked.
type Turn struct {
	Say string `yaml:"say"`

	// ExpectNew is the expected number of new conditions.
	ExpectNew *int `yaml:"expect_new,omitempty"`

	// ExpectRemoved is the expected number of removed conditions.
	ExpectRemoved *int `yaml:"expect_removed,omitempty"`

	// ExpectOutcome is the expected terminal outcome
	// (added, removed, removal_miss, duplicate, no_match).
	ExpectOutcome string `yaml:"expect_outcome,omitempty"`

	// ExpectContains is a substring the response must contain.
	ExpectContains string `yaml:"expect_contains,omitempty"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Turns) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one turn is required", path)
	}
	for i, turn := range s.Turns {
		if turn.Say == "" {
			return nil, fmt.Errorf("scenario %s: turn %d has no utterance", path, i+1)
		}
	}
	return &s, nil
}
