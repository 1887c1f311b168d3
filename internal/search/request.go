package search

import "fmt"

// FilterCriteria is one leaf criterion as it arrives on the wire. Value
// and MaxValue stay untyped here; validation converts them to typed
// scalars. MaxValue is only consulted for BETWEEN.
type FilterCriteria struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value,omitempty"`
	MaxValue any      `json:"maxValue,omitempty"`
}

// FilterGroup combines criteria with a single logical operator.
type FilterGroup struct {
	Filters  []FilterCriteria `json:"filters"`
	Operator LogicalOperator  `json:"operator,omitempty"`
}

// Request is the full advanced-search expression: a list of groups
// whose internal operator binds tighter than the group operator.
// (f1 OP f2) GROUP_OP (f3 OP f4) is the entire expressiveness of the
// language; deeper nesting is deliberately not supported.
//
// Requests round-trip losslessly through encoding/json, which is the
// persistence contract saved searches rely on.
type Request struct {
	FilterGroups  []FilterGroup   `json:"filterGroups"`
	GroupOperator LogicalOperator `json:"groupOperator,omitempty"`
}

// FieldError describes one rejected criterion. Every invalid criterion
// in a request produces its own entry so the client can fix all of them
// in a single round trip.
type FieldError struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Reason   string `json:"reason"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s: %s", e.Field, e.Operator, e.Reason)
}

// FilterCount returns the number of leaf criteria in the request,
// which is what response metadata reports (groups are not counted).
func (r Request) FilterCount() int {
	n := 0
	for _, g := range r.FilterGroups {
		n += len(g.Filters)
	}
	return n
}
