package segment

// Field identifies one attribute of a customer that a condition can
// filter on. The catalogue is closed: conditions reference these
// constants only, never free-form field names.
type Field string

// The field catalogue.
const (
	FieldShopifyPurchase      Field = "Shopify Purchase"
	FieldEmailReceived        Field = "Email Received"
	FieldCustomerTag          Field = "Customer Tag"
	FieldCartValue            Field = "Cart Value"
	FieldCartAbandoned        Field = "Cart Abandoned"
	FieldCustomerStatus       Field = "Customer Status"
	FieldLastActivity         Field = "Last Activity"
	FieldLocation             Field = "Location"
	FieldNewsletterSubscriber Field = "Newsletter Subscriber"
)

// Kind classifies a field by the shape of its values, which in turn
// determines the operator set that applies to it.
type Kind int

const (
	// KindText fields hold free-form strings (locations, statuses).
	KindText Kind = iota
	// KindTag fields hold customer tags matched by containment.
	KindTag
	// KindAmount fields hold dollar amounts.
	KindAmount
	// KindBool fields hold True/False flags.
	KindBool
	// KindDatetime fields describe activity inside a time window and
	// always carry a TimeRange.
	KindDatetime
)

// fieldKinds maps every catalogue field to its kind. A field missing
// here is a programming error, caught by KnownField.
var fieldKinds = map[Field]Kind{
	FieldShopifyPurchase:      KindDatetime,
	FieldEmailReceived:        KindDatetime,
	FieldLastActivity:         KindDatetime,
	FieldCustomerTag:          KindTag,
	FieldCartValue:            KindAmount,
	FieldCartAbandoned:        KindBool,
	FieldCustomerStatus:       KindText,
	FieldLocation:             KindText,
	FieldNewsletterSubscriber: KindBool,
}

// KnownField reports whether f is part of the catalogue.
func KnownField(f Field) bool {
	_, ok := fieldKinds[f]
	return ok
}

// KindOf returns the kind of a catalogue field. Unknown fields report
// KindText; callers that need strictness should check KnownField first.
func KindOf(f Field) Kind {
	if k, ok := fieldKinds[f]; ok {
		return k
	}
	return KindText
}

// Operator is a comparison drawn from the per-kind operator sets below.
type Operator string

// The operator catalogue.
const (
	OpIs             Operator = "is"
	OpIsNot          Operator = "is not"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "does not contain"
	OpEquals         Operator = "equals"
	OpGreaterThan    Operator = "greater than"
	OpLessThan       Operator = "less than"
	OpBetween        Operator = "between"
	OpInLast         Operator = "in last"
	OpBefore         Operator = "before"
	OpAfter          Operator = "after"
	OpIsNone         Operator = "is none"
)

// operatorsByKind defines the allowed operator set per field kind.
// Order within each set is not significant.
var operatorsByKind = map[Kind][]Operator{
	KindText:     {OpIs, OpIsNot, OpContains, OpNotContains},
	KindTag:      {OpContains, OpNotContains, OpIs, OpIsNot},
	KindAmount:   {OpEquals, OpGreaterThan, OpLessThan, OpBetween},
	KindBool:     {OpIs},
	KindDatetime: {OpIs, OpIsNot, OpInLast, OpBefore, OpAfter, OpIsNone},
}

// ValidOperator reports whether op is allowed for field f.
func ValidOperator(f Field, op Operator) bool {
	for _, allowed := range operatorsByKind[KindOf(f)] {
		if op == allowed {
			return true
		}
	}
	return false
}

// LogicOperator joins a condition to the one that follows it.
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// Condition is a single filter criterion in a segment definition.
//
// TimeRange is a normalized phrase such as "Last 30 days". Datetime
// fields always carry one; cart fields carry the window the activity
// happened in; other fields leave it empty.
//
// LogicOperator describes how this condition combines with the NEXT
// condition in the segment, not the previous one. It defaults to AND.
type Condition struct {
	ID            string        `json:"id"`
	Field         Field         `json:"field"`
	Operator      Operator      `json:"operator"`
	Value         string        `json:"value"`
	TimeRange     string        `json:"timeRange,omitempty"`
	LogicOperator LogicOperator `json:"logicOperator"`
}

// Same reports whether two conditions express the same criterion.
// Equality is field + operator + value, exact string comparison.
// TimeRange is deliberately excluded: two conditions differing only by
// time window count as the same criterion. This mirrors the original
// product behavior and is known to surprise users; it is kept as-is.
func (c Condition) Same(other Condition) bool {
	return c.Field == other.Field &&
		c.Operator == other.Operator &&
		c.Value == other.Value
}
