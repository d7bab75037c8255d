package rules

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/segment/internal/segment"
)

// CompilePattern parses one CUE pattern struct into a Pattern.
//
// The CUE value is the pattern body; its name comes from the struct
// label, e.g.:
//
//	pattern: "vip-tag": {
//		keywords: [["vip", "high value"]]
//		response: "Added: VIP customers only"
//		conditions: [{field: "Customer Tag", operator: "contains", value: "VIP"}]
//	}
func CompilePattern(name string, v cue.Value) (*Pattern, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &Pattern{Name: name}

	keywords, err := parseKeywords(v)
	if err != nil {
		return nil, err
	}
	p.Keywords = keywords

	respVal := v.LookupPath(cue.ParsePath("response"))
	if !respVal.Exists() {
		return nil, &CompileError{Code: ErrCodeNoResponse, Field: "response", Message: "response is required", Pos: v.Pos()}
	}
	resp, err := respVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if resp == "" {
		return nil, &CompileError{Code: ErrCodeNoResponse, Field: "response", Message: "response must not be empty", Pos: respVal.Pos()}
	}
	p.Response = resp

	conditions, err := parseTemplateConditions(v)
	if err != nil {
		return nil, err
	}
	p.Conditions = conditions

	return p, nil
}

func parseKeywords(v cue.Value) ([][]string, error) {
	kwVal := v.LookupPath(cue.ParsePath("keywords"))
	if !kwVal.Exists() {
		return nil, &CompileError{Code: ErrCodeNoKeywords, Field: "keywords", Message: "at least one keyword group is required", Pos: v.Pos()}
	}

	var groups [][]string
	groupIter, err := kwVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for groupIter.Next() {
		var group []string
		phraseIter, err := groupIter.Value().List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for phraseIter.Next() {
			phrase, err := phraseIter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			if phrase == "" {
				return nil, &CompileError{Code: ErrCodeEmptyGroup, Field: "keywords", Message: "keyword phrases must not be empty", Pos: phraseIter.Value().Pos()}
			}
			group = append(group, phrase)
		}
		if len(group) == 0 {
			return nil, &CompileError{Code: ErrCodeEmptyGroup, Field: "keywords", Message: "keyword group must contain at least one phrase", Pos: groupIter.Value().Pos()}
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return nil, &CompileError{Code: ErrCodeNoKeywords, Field: "keywords", Message: "at least one keyword group is required", Pos: kwVal.Pos()}
	}
	return groups, nil
}

func parseTemplateConditions(v cue.Value) ([]segment.Condition, error) {
	condsVal := v.LookupPath(cue.ParsePath("conditions"))
	if !condsVal.Exists() {
		return nil, &CompileError{Code: ErrCodeNoConditions, Field: "conditions", Message: "at least one template condition is required", Pos: v.Pos()}
	}

	var conditions []segment.Condition
	iter, err := condsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		cond, err := parseTemplateCondition(iter.Value())
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, *cond)
	}
	if len(conditions) == 0 {
		return nil, &CompileError{Code: ErrCodeNoConditions, Field: "conditions", Message: "at least one template condition is required", Pos: condsVal.Pos()}
	}
	return conditions, nil
}

func parseTemplateCondition(v cue.Value) (*segment.Condition, error) {
	fieldStr, err := requireString(v, "field")
	if err != nil {
		return nil, err
	}
	field := segment.Field(fieldStr)
	if !segment.KnownField(field) {
		return nil, &CompileError{Code: ErrCodeBadField, Field: "field", Message: fmt.Sprintf("unknown field %q", fieldStr), Pos: v.Pos()}
	}

	opStr, err := requireString(v, "operator")
	if err != nil {
		return nil, err
	}
	op := segment.Operator(opStr)
	if !segment.ValidOperator(field, op) {
		return nil, &CompileError{Code: ErrCodeBadOperator, Field: "operator", Message: fmt.Sprintf("operator %q is not valid for field %q", opStr, fieldStr), Pos: v.Pos()}
	}

	valueVal := v.LookupPath(cue.ParsePath("value"))
	value := ""
	if valueVal.Exists() {
		if value, err = valueVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if value == "" && op != segment.OpIsNone {
		return nil, &CompileError{Code: ErrCodeBadValue, Field: "value", Message: "value may be empty only with the \"is none\" operator", Pos: v.Pos()}
	}

	timeRange := ""
	trVal := v.LookupPath(cue.ParsePath("timeRange"))
	if trVal.Exists() {
		if timeRange, err = trVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	return &segment.Condition{
		Field:         field,
		Operator:      op,
		Value:         value,
		TimeRange:     timeRange,
		LogicOperator: segment.LogicAnd,
	}, nil
}

func requireString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{Code: ErrCodeGeneric, Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// CompileResponses parses the responses struct of a pack. Every pool
// is optional; missing entries fall back to the built-in pack's
// values so partial packs stay usable.
func CompileResponses(v cue.Value, fallback ResponsePools) (*ResponsePools, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pools := fallback

	for _, f := range []struct {
		path string
		dst  *string
	}{
		{"fallback", &pools.Fallback},
		{"alreadyExists", &pools.AlreadyExists},
		{"removalMiss", &pools.RemovalMiss},
	} {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			continue
		}
		s, err := fv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		*f.dst = s
	}

	for _, f := range []struct {
		path string
		dst  *[]string
	}{
		{"removal", &pools.Removal},
		{"andAddition", &pools.AndAddition},
		{"orAddition", &pools.OrAddition},
		{"confirmation", &pools.Confirmation},
	} {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			continue
		}
		var pool []string
		iter, err := fv.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			pool = append(pool, s)
		}
		if len(pool) > 0 {
			*f.dst = pool
		}
	}

	return &pools, nil
}
