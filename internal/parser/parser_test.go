package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/segment/internal/segment"
)

// newTestParser pins IDs and response selection so assertions can use
// exact strings.
func newTestParser() *Parser {
	return New(
		WithIDGenerator(segment.NewSequenceGenerator("cond")),
		WithPicker(FirstPick),
	)
}

func cond(field segment.Field, op segment.Operator, value, timeRange string) segment.Condition {
	return segment.Condition{
		ID:            "existing-1",
		Field:         field,
		Operator:      op,
		Value:         value,
		TimeRange:     timeRange,
		LogicOperator: segment.LogicAnd,
	}
}

func TestParseComposed(t *testing.T) {
	tests := []struct {
		name         string
		utterance    string
		wantResponse string
		want         []segment.Condition
	}{
		{
			name:         "purchase with explicit window",
			utterance:    "customers who purchased in last 30 days",
			wantResponse: "Added: Customers who purchased in last 30 days",
			want: []segment.Condition{{
				Field: segment.FieldShopifyPurchase, Operator: segment.OpIs,
				Value: "Any", TimeRange: "Last 30 days",
			}},
		},
		{
			name:         "purchase default window",
			utterance:    "customers who purchased recently",
			wantResponse: "Added: Customers who purchased in last 30 days",
			want: []segment.Condition{{
				Field: segment.FieldShopifyPurchase, Operator: segment.OpIs,
				Value: "Any", TimeRange: "Last 30 days",
			}},
		},
		{
			name:         "negated purchase",
			utterance:    "customers who haven't purchased in last 60 days",
			wantResponse: "Added: Customers without purchases in last 60 days",
			want: []segment.Condition{{
				Field: segment.FieldShopifyPurchase, Operator: segment.OpIsNot,
				Value: "Any", TimeRange: "Last 60 days",
			}},
		},
		{
			name:         "vip synonym",
			utterance:    "VIP customers",
			wantResponse: "Added: Customers tagged VIP",
			want: []segment.Condition{{
				Field: segment.FieldCustomerTag, Operator: segment.OpContains,
				Value: "VIP",
			}},
		},
		{
			name:         "explicit tag",
			utterance:    "customers tagged as wholesale-2024",
			wantResponse: "Added: Customers tagged wholesale-2024",
			want: []segment.Condition{{
				Field: segment.FieldCustomerTag, Operator: segment.OpContains,
				Value: "wholesale-2024",
			}},
		},
		{
			name:         "location abbreviation",
			utterance:    "customers from the UK",
			wantResponse: "Added: Customers located in United Kingdom",
			want: []segment.Condition{{
				Field: segment.FieldLocation, Operator: segment.OpIs,
				Value: "United Kingdom",
			}},
		},
		{
			name:         "negated location",
			utterance:    "customers not located in Germany",
			wantResponse: "Added: Customers not located in Germany",
			want: []segment.Condition{{
				Field: segment.FieldLocation, Operator: segment.OpIsNot,
				Value: "Germany",
			}},
		},
		{
			name:         "location list",
			utterance:    "customers from France or Spain",
			wantResponse: "Added: Customers located in France; customers located in Spain",
			want: []segment.Condition{
				{Field: segment.FieldLocation, Operator: segment.OpIs, Value: "France"},
				{Field: segment.FieldLocation, Operator: segment.OpIs, Value: "Spain"},
			},
		},
		{
			name:         "email with window",
			utterance:    "customers emailed in the last 3 days",
			wantResponse: "Added: Customers emailed in last 3 days",
			want: []segment.Condition{{
				Field: segment.FieldEmailReceived, Operator: segment.OpIs,
				Value: "Any", TimeRange: "Last 3 days",
			}},
		},
		{
			name:         "negated email",
			utterance:    "exclude customers emailed in past 3 days",
			wantResponse: "Added: Customers not emailed in last 3 days",
			want: []segment.Condition{{
				Field: segment.FieldEmailReceived, Operator: segment.OpIsNot,
				Value: "Any", TimeRange: "Last 3 days",
			}},
		},
		{
			name:         "cart with amount",
			utterance:    "customers who abandoned carts over $100",
			wantResponse: "Added: Customers with cart value greater than $100",
			want: []segment.Condition{{
				Field: segment.FieldCartValue, Operator: segment.OpGreaterThan,
				Value: "$100", TimeRange: "Last 7 days",
			}},
		},
		{
			name:         "cart abandoners with amount",
			utterance:    "cart abandoners over $100",
			wantResponse: "Added: Customers with cart value greater than $100",
			want: []segment.Condition{{
				Field: segment.FieldCartValue, Operator: segment.OpGreaterThan,
				Value: "$100", TimeRange: "Last 7 days",
			}},
		},
		{
			name:         "cart abandonment without amount",
			utterance:    "customers who abandoned their cart",
			wantResponse: "Added: Customers who abandoned their cart",
			want: []segment.Condition{{
				Field: segment.FieldCartAbandoned, Operator: segment.OpIs,
				Value: "True", TimeRange: "Last 7 days",
			}},
		},
		{
			name:         "subscriber",
			utterance:    "newsletter subscribers",
			wantResponse: "Added: Newsletter subscribers",
			want: []segment.Condition{{
				Field: segment.FieldNewsletterSubscriber, Operator: segment.OpIs,
				Value: "True",
			}},
		},
		{
			name:         "negated subscriber",
			utterance:    "exclude newsletter subscribers",
			wantResponse: "Added: Customers not subscribed to the newsletter",
			want: []segment.Condition{{
				Field: segment.FieldNewsletterSubscriber, Operator: segment.OpIs,
				Value: "False",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newTestParser().Parse(tt.utterance, nil)

			assert.Equal(t, segment.OutcomeAdded, result.Outcome)
			assert.Equal(t, tt.wantResponse, result.Response)
			assert.Empty(t, result.RemovedConditions)
			assert.Empty(t, result.UpdatePreviousLogic)

			require.Len(t, result.NewConditions, len(tt.want))
			for i, want := range tt.want {
				got := result.NewConditions[i]
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, want.Field, got.Field)
				assert.Equal(t, want.Operator, got.Operator)
				assert.Equal(t, want.Value, got.Value)
				assert.Equal(t, want.TimeRange, got.TimeRange)
				assert.Equal(t, segment.LogicAnd, got.LogicOperator)
			}
		})
	}
}

func TestParseMultiEntity(t *testing.T) {
	result := newTestParser().Parse("VIP customers from UK who purchased in last 7 days", nil)

	require.Equal(t, segment.OutcomeAdded, result.Outcome)
	require.Len(t, result.NewConditions, 3)

	// Composition order is fixed: location, tag, purchase.
	assert.Equal(t, segment.FieldLocation, result.NewConditions[0].Field)
	assert.Equal(t, "United Kingdom", result.NewConditions[0].Value)
	assert.Equal(t, segment.FieldCustomerTag, result.NewConditions[1].Field)
	assert.Equal(t, "VIP", result.NewConditions[1].Value)
	assert.Equal(t, segment.FieldShopifyPurchase, result.NewConditions[2].Field)
	assert.Equal(t, "Last 7 days", result.NewConditions[2].TimeRange)

	assert.Equal(t,
		"Added: Customers located in United Kingdom; customers tagged VIP; customers who purchased in last 7 days",
		result.Response)

	// IDs are minted in order within the batch.
	assert.Equal(t, "cond-000001", result.NewConditions[0].ID)
	assert.Equal(t, "cond-000002", result.NewConditions[1].ID)
	assert.Equal(t, "cond-000003", result.NewConditions[2].ID)
}

func TestParseOrContinuation(t *testing.T) {
	existing := []segment.Condition{
		cond(segment.FieldShopifyPurchase, segment.OpIs, "Any", "Last 30 days"),
	}

	t.Run("or against existing conditions", func(t *testing.T) {
		result := newTestParser().Parse("or customers from UK", existing)

		assert.Equal(t, segment.OutcomeAdded, result.Outcome)
		assert.Equal(t, "Added with OR logic: Customers located in United Kingdom", result.Response)
		assert.Equal(t, segment.LogicOr, result.UpdatePreviousLogic)
	})

	t.Run("or against empty segment stays plain", func(t *testing.T) {
		result := newTestParser().Parse("or customers from UK", nil)

		assert.Equal(t, "Added: Customers located in United Kingdom", result.Response)
		assert.Empty(t, result.UpdatePreviousLogic)
	})

	t.Run("and continuation reports and", func(t *testing.T) {
		result := newTestParser().Parse("customers from UK", existing)

		assert.Equal(t, "Added: Customers located in United Kingdom", result.Response)
		assert.Equal(t, segment.LogicAnd, result.UpdatePreviousLogic)
	})
}

func TestParseDuplicates(t *testing.T) {
	existing := []segment.Condition{
		cond(segment.FieldShopifyPurchase, segment.OpIs, "Any", "Last 30 days"),
	}

	t.Run("full duplicate", func(t *testing.T) {
		result := newTestParser().Parse("customers who purchased in last 30 days", existing)

		assert.Equal(t, segment.OutcomeDuplicate, result.Outcome)
		assert.Empty(t, result.NewConditions)
		assert.Empty(t, result.UpdatePreviousLogic)
		assert.Contains(t, result.Response, "already exists")
	})

	t.Run("duplicate ignoring time range", func(t *testing.T) {
		result := newTestParser().Parse("customers who purchased in last 7 days", existing)

		assert.Equal(t, segment.OutcomeDuplicate, result.Outcome)
	})

	t.Run("partial duplicate keeps the rest", func(t *testing.T) {
		result := newTestParser().Parse("customers from Germany who purchased in last 30 days", existing)

		require.Equal(t, segment.OutcomeAdded, result.Outcome)
		require.Len(t, result.NewConditions, 1)
		assert.Equal(t, segment.FieldLocation, result.NewConditions[0].Field)
		// The response only acknowledges what was actually added.
		assert.Equal(t, "Added: Customers located in Germany", result.Response)
	})
}

func TestParseRemoval(t *testing.T) {
	purchase := cond(segment.FieldShopifyPurchase, segment.OpIs, "Any", "Last 30 days")
	location := cond(segment.FieldLocation, segment.OpIs, "United Kingdom", "")
	location.ID = "existing-2"

	t.Run("targeted removal", func(t *testing.T) {
		result := newTestParser().Parse("remove the location condition",
			[]segment.Condition{purchase, location})

		assert.Equal(t, segment.OutcomeRemoved, result.Outcome)
		assert.Equal(t, "Removed condition", result.Response)
		require.Len(t, result.RemovedConditions, 1)
		assert.Equal(t, "existing-2", result.RemovedConditions[0].ID)
		assert.Empty(t, result.NewConditions)
	})

	t.Run("untargeted removal drops the last condition", func(t *testing.T) {
		result := newTestParser().Parse("undo that",
			[]segment.Condition{purchase, location})

		assert.Equal(t, segment.OutcomeRemoved, result.Outcome)
		require.Len(t, result.RemovedConditions, 1)
		assert.Equal(t, "existing-2", result.RemovedConditions[0].ID)
	})

	t.Run("removal wins over composition", func(t *testing.T) {
		// "purchase" would compose a new condition; deletion intent
		// short-circuits first.
		result := newTestParser().Parse("remove the purchase condition",
			[]segment.Condition{purchase, location})

		assert.Equal(t, segment.OutcomeRemoved, result.Outcome)
		require.Len(t, result.RemovedConditions, 1)
		assert.Equal(t, "existing-1", result.RemovedConditions[0].ID)
		assert.Empty(t, result.NewConditions)
	})

	t.Run("email keyword selects only the email condition", func(t *testing.T) {
		email := cond(segment.FieldEmailReceived, segment.OpIsNot, "Any", "Last 3 days")
		email.ID = "existing-3"

		result := newTestParser().Parse("remove the email condition",
			[]segment.Condition{email, purchase})

		assert.Equal(t, segment.OutcomeRemoved, result.Outcome)
		require.Len(t, result.RemovedConditions, 1)
		assert.Equal(t, "existing-3", result.RemovedConditions[0].ID)
		assert.Empty(t, result.NewConditions)
	})

	t.Run("miss on field with no conditions", func(t *testing.T) {
		result := newTestParser().Parse("remove the email condition",
			[]segment.Condition{purchase})

		assert.Equal(t, segment.OutcomeRemovalMiss, result.Outcome)
		assert.Empty(t, result.RemovedConditions)
		assert.Contains(t, result.Response, "No matching condition")
	})

	t.Run("miss on empty segment", func(t *testing.T) {
		result := newTestParser().Parse("delete the last condition", nil)

		assert.Equal(t, segment.OutcomeRemovalMiss, result.Outcome)
	})

	t.Run("cart keyword selects both cart fields", func(t *testing.T) {
		value := cond(segment.FieldCartValue, segment.OpGreaterThan, "$100", "Last 7 days")
		abandoned := cond(segment.FieldCartAbandoned, segment.OpIs, "True", "Last 7 days")
		abandoned.ID = "existing-2"

		result := newTestParser().Parse("remove the cart conditions",
			[]segment.Condition{value, abandoned})

		assert.Equal(t, segment.OutcomeRemoved, result.Outcome)
		assert.Len(t, result.RemovedConditions, 2)
	})
}

func TestParseLegacyFallback(t *testing.T) {
	t.Run("pattern match", func(t *testing.T) {
		result := newTestParser().Parse("show me america", nil)

		assert.Equal(t, segment.OutcomeAdded, result.Outcome)
		assert.Equal(t, "Added: Customers in the United States", result.Response)
		require.Len(t, result.NewConditions, 1)
		assert.Equal(t, segment.FieldLocation, result.NewConditions[0].Field)
		assert.Equal(t, "United States", result.NewConditions[0].Value)
		assert.NotEmpty(t, result.NewConditions[0].ID)
	})

	t.Run("or rewrites the canned response", func(t *testing.T) {
		existing := []segment.Condition{
			cond(segment.FieldShopifyPurchase, segment.OpIs, "Any", "Last 30 days"),
		}
		result := newTestParser().Parse("or show me america", existing)

		assert.Equal(t, "Added with OR: Customers in the United States", result.Response)
		assert.Equal(t, segment.LogicOr, result.UpdatePreviousLogic)
	})

	t.Run("pattern duplicate", func(t *testing.T) {
		existing := []segment.Condition{
			cond(segment.FieldLocation, segment.OpIs, "United States", ""),
		}
		result := newTestParser().Parse("show me america", existing)

		assert.Equal(t, segment.OutcomeDuplicate, result.Outcome)
	})
}

func TestParseNoMatch(t *testing.T) {
	for _, utterance := range []string{"make it sparkle", "", "   "} {
		t.Run("utterance "+utterance, func(t *testing.T) {
			result := newTestParser().Parse(utterance, nil)

			assert.Equal(t, segment.OutcomeNoMatch, result.Outcome)
			assert.Contains(t, result.Response, "I didn't understand")
			assert.NotNil(t, result.NewConditions)
			assert.NotNil(t, result.RemovedConditions)
			assert.Empty(t, result.NewConditions)
			assert.Empty(t, result.RemovedConditions)
		})
	}
}

// Feeding a parse's own output back as existing conditions must yield
// a duplicate, never unbounded growth.
func TestParseIdempotence(t *testing.T) {
	utterances := []string{
		"customers who purchased in last 30 days",
		"VIP customers",
		"customers from the UK",
		"newsletter subscribers",
		"customers who abandoned carts over $100",
	}

	for _, utterance := range utterances {
		t.Run(utterance, func(t *testing.T) {
			p := newTestParser()
			first := p.Parse(utterance, nil)
			require.Equal(t, segment.OutcomeAdded, first.Outcome)

			second := p.Parse(utterance, first.NewConditions)
			assert.Equal(t, segment.OutcomeDuplicate, second.Outcome)
			assert.Empty(t, second.NewConditions)
		})
	}
}

func TestDetectLogic(t *testing.T) {
	orUtterances := []string{
		"or customers from UK",
		"also include wholesale accounts",
		"plus customers from Spain",
		"including those who bought last week",
		"either VIP or premium customers",
		"alternatively, newsletter subscribers",
	}
	for _, u := range orUtterances {
		assert.Equal(t, segment.LogicOr, detectLogic(u), u)
	}

	andUtterances := []string{
		"customers who purchased in last 30 days",
		"and exclude inactive accounts",
		"order history over $50", // "or" inside a word is not OR intent
	}
	for _, u := range andUtterances {
		assert.Equal(t, segment.LogicAnd, detectLogic(u), u)
	}
}

func TestFilterDuplicates(t *testing.T) {
	a := segment.Condition{Field: segment.FieldLocation, Operator: segment.OpIs, Value: "France"}
	b := segment.Condition{Field: segment.FieldLocation, Operator: segment.OpIs, Value: "Spain"}

	t.Run("in-batch duplicate is dropped", func(t *testing.T) {
		kept := filterDuplicates([]segment.Condition{a, a, b}, nil)
		require.Len(t, kept, 2)
		assert.Equal(t, "France", kept[0].Value)
		assert.Equal(t, "Spain", kept[1].Value)
	})

	t.Run("existing duplicate is dropped", func(t *testing.T) {
		kept := filterDuplicates([]segment.Condition{a, b}, []segment.Condition{a})
		require.Len(t, kept, 1)
		assert.Equal(t, "Spain", kept[0].Value)
	})

	t.Run("empty candidates", func(t *testing.T) {
		assert.Empty(t, filterDuplicates(nil, []segment.Condition{a}))
	})
}

func TestSortPatterns(t *testing.T) {
	p := New() // builtin pack

	// Most-specific-first: every two-group pattern precedes every
	// one-group pattern.
	seenSingle := false
	for _, pattern := range p.patterns {
		if len(pattern.Keywords) == 1 {
			seenSingle = true
		} else {
			assert.False(t, seenSingle,
				"pattern %q with %d groups after a single-group pattern",
				pattern.Name, len(pattern.Keywords))
		}
	}
}
