package vectordb

import "reflect"

// FilterCondition is implemented by every condition that can appear in a FilterSet.
type FilterCondition interface {
	IsFilterCondition()
	// Matches evaluates the condition against a payload. Backends that push
	// filters down to the database do not call it.
	Matches(payload map[string]any) bool
}

// FilterSet combines conditions the way Qdrant does:
//
//	Must    -> AND
//	Should  -> OR
//	MustNot -> NOT (none may match)
type FilterSet struct {
	Must    *ConditionSet `json:"must,omitempty"`
	Should  *ConditionSet `json:"should,omitempty"`
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// ConditionSet is a list of conditions inside one clause.
type ConditionSet struct {
	Conditions []FilterCondition `json:"conditions"`
}

// MatchCondition matches a payload field equal to Value.
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

func (c *MatchCondition) IsFilterCondition() {}

func (c *MatchCondition) Matches(payload map[string]any) bool {
	v, ok := payload[c.Field]
	return ok && valuesEqual(v, c.Value)
}

// MatchAnyCondition matches a payload field equal to any of Values.
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"values"`
}

func (c *MatchAnyCondition) IsFilterCondition() {}

func (c *MatchAnyCondition) Matches(payload map[string]any) bool {
	v, ok := payload[c.Field]
	if !ok {
		return false
	}
	for _, want := range c.Values {
		if valuesEqual(v, want) {
			return true
		}
	}
	return false
}

// Matches reports whether payload satisfies every clause. A nil FilterSet
// matches everything.
func (fs *FilterSet) Matches(payload map[string]any) bool {
	if fs == nil {
		return true
	}
	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			if !c.Matches(payload) {
				return false
			}
		}
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		matched := false
		for _, c := range fs.Should.Conditions {
			if c.Matches(payload) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if fs.MustNot != nil {
		for _, c := range fs.MustNot.Conditions {
			if c.Matches(payload) {
				return false
			}
		}
	}
	return true
}

// IsEmpty reports whether the set has no conditions at all.
func (fs *FilterSet) IsEmpty() bool {
	if fs == nil {
		return true
	}
	for _, cs := range []*ConditionSet{fs.Must, fs.Should, fs.MustNot} {
		if cs != nil && len(cs.Conditions) > 0 {
			return false
		}
	}
	return true
}

// valuesEqual compares payload values that may have gone through a JSON
// round trip, so 3 and 3.0 are equal.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
