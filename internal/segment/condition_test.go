package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownField(t *testing.T) {
	for _, f := range []Field{
		FieldShopifyPurchase, FieldEmailReceived, FieldCustomerTag,
		FieldCartValue, FieldCartAbandoned, FieldCustomerStatus,
		FieldLastActivity, FieldLocation, FieldNewsletterSubscriber,
	} {
		assert.True(t, KnownField(f), "field %q should be known", f)
	}

	assert.False(t, KnownField("Shoe Size"))
	assert.False(t, KnownField(""))
}

func TestValidOperator(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		op    Operator
		want  bool
	}{
		{"datetime accepts is", FieldShopifyPurchase, OpIs, true},
		{"datetime accepts is not", FieldEmailReceived, OpIsNot, true},
		{"datetime accepts is none", FieldLastActivity, OpIsNone, true},
		{"datetime rejects contains", FieldShopifyPurchase, OpContains, false},
		{"tag accepts contains", FieldCustomerTag, OpContains, true},
		{"tag accepts does not contain", FieldCustomerTag, OpNotContains, true},
		{"tag rejects greater than", FieldCustomerTag, OpGreaterThan, false},
		{"amount accepts between", FieldCartValue, OpBetween, true},
		{"amount accepts greater than", FieldCartValue, OpGreaterThan, true},
		{"amount rejects is", FieldCartValue, OpIs, false},
		{"bool accepts is", FieldCartAbandoned, OpIs, true},
		{"bool rejects is not", FieldNewsletterSubscriber, OpIsNot, false},
		{"text accepts is not", FieldLocation, OpIsNot, true},
		{"text rejects between", FieldCustomerStatus, OpBetween, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidOperator(tt.field, tt.op))
		})
	}
}

func TestConditionSame(t *testing.T) {
	base := Condition{
		ID:            "a",
		Field:         FieldShopifyPurchase,
		Operator:      OpIs,
		Value:         "Any",
		TimeRange:     "Last 30 days",
		LogicOperator: LogicAnd,
	}

	t.Run("identical", func(t *testing.T) {
		assert.True(t, base.Same(base))
	})

	t.Run("id and logic do not matter", func(t *testing.T) {
		other := base
		other.ID = "b"
		other.LogicOperator = LogicOr
		assert.True(t, base.Same(other))
	})

	t.Run("time range is excluded from equality", func(t *testing.T) {
		other := base
		other.TimeRange = "Last 7 days"
		assert.True(t, base.Same(other))
	})

	t.Run("field differs", func(t *testing.T) {
		other := base
		other.Field = FieldEmailReceived
		assert.False(t, base.Same(other))
	})

	t.Run("operator differs", func(t *testing.T) {
		other := base
		other.Operator = OpIsNot
		assert.False(t, base.Same(other))
	})

	t.Run("value differs", func(t *testing.T) {
		other := base
		other.Value = "None"
		assert.False(t, base.Same(other))
	})

	t.Run("value comparison is case sensitive", func(t *testing.T) {
		other := base
		other.Value = "any"
		assert.False(t, base.Same(other))
	})
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("cond")
	assert.Equal(t, "cond-000001", gen.NewID())
	assert.Equal(t, "cond-000002", gen.NewID())
	assert.Equal(t, "cond-000003", gen.NewID())
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.NewID()
	b := gen.NewID()
	require.NotEqual(t, a, b)
	assert.Len(t, a, 36)

	// Version nibble sits at position 14 in the hyphenated form.
	assert.Equal(t, byte('7'), a[14])
}
