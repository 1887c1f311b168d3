package search

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestCompileAccumulatesAllErrors(t *testing.T) {
	req := Request{
		FilterGroups: []FilterGroup{
			{
				Operator: LogicalAnd,
				Filters: []FilterCriteria{
					{Field: "shoeSize", Operator: OpEquals, Value: "44"},
					{Field: "firstName", Operator: OpGreaterThan, Value: "John"},
					{Field: "age", Operator: OpEquals, Value: "not a number"},
				},
			},
		},
	}

	compiled, errs := Compile(req)
	if compiled != nil {
		t.Fatalf("expected nil compiled result, got %+v", compiled)
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Reason != "unknown field" {
		t.Errorf("errs[0].Reason = %q", errs[0].Reason)
	}
	if !strings.Contains(errs[1].Reason, "not supported for TEXT") {
		t.Errorf("errs[1].Reason = %q", errs[1].Reason)
	}
	if !strings.Contains(errs[2].Reason, "number") {
		t.Errorf("errs[2].Reason = %q", errs[2].Reason)
	}
}

// Field names resolve only through the catalog; names that spell out
// tenant or soft-delete columns must fail closed, not reach SQL.
func TestCompileRejectsTenantColumnNames(t *testing.T) {
	for _, field := range []string{"church_id", "churchId", "m.church_id", "deleted_at", "deletedAt"} {
		req := Request{FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{{Field: field, Operator: OpIsNull}}},
		}}

		compiled, errs := Compile(req)
		if compiled != nil {
			t.Fatalf("%s: expected compilation to fail", field)
		}
		if len(errs) != 1 || errs[0].Reason != "unknown field" {
			t.Fatalf("%s: expected unknown-field error, got %v", field, errs)
		}
	}
}

func TestCompileRejectsEmptyGroup(t *testing.T) {
	req := Request{FilterGroups: []FilterGroup{{Operator: LogicalOr}}}

	_, errs := Compile(req)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Reason, "at least one filter") {
		t.Errorf("Reason = %q", errs[0].Reason)
	}
}

func TestCompileRejectsUnknownLogicalOperators(t *testing.T) {
	req := Request{
		GroupOperator: "XOR",
		FilterGroups: []FilterGroup{
			{
				Operator: "NAND",
				Filters:  []FilterCriteria{{Field: "city", Operator: OpEquals, Value: "Accra"}},
			},
		},
	}

	_, errs := Compile(req)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}

func TestCompileBetweenBounds(t *testing.T) {
	req := Request{
		FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{
				{Field: "age", Operator: OpBetween, Value: float64(65), MaxValue: float64(18)},
			}},
		},
	}

	_, errs := Compile(req)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Reason, "must not exceed maxValue") {
		t.Errorf("Reason = %q", errs[0].Reason)
	}

	req.FilterGroups[0].Filters[0].MaxValue = nil
	_, errs = Compile(req)
	if len(errs) != 1 || !strings.Contains(errs[0].Reason, "maxValue") {
		t.Fatalf("expected missing-maxValue error, got %v", errs)
	}
}

func TestCompileIsNullValueWarns(t *testing.T) {
	req := Request{
		FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{
				{Field: "email", Operator: OpIsNull, Value: "ignored"},
			}},
		},
	}

	compiled, errs := Compile(req)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(compiled.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", compiled.Warnings)
	}
	if compiled.FilterCount() != 1 {
		t.Errorf("FilterCount = %d, want 1", compiled.FilterCount())
	}
}

func TestCompileRejectsEmptyList(t *testing.T) {
	req := Request{
		FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{
				{Field: "status", Operator: OpIn, Value: []any{}},
			}},
		},
	}

	_, errs := Compile(req)
	if len(errs) != 1 || !strings.Contains(errs[0].Reason, "at least one element") {
		t.Fatalf("expected empty-list error, got %v", errs)
	}
}

func TestCompileOperatorCompatibility(t *testing.T) {
	cases := []struct {
		field    string
		operator Operator
		value    any
		ok       bool
	}{
		{"firstName", OpContains, "jo", true},
		{"firstName", OpBetween, "a", false},
		{"age", OpGreaterOrEqual, float64(18), true},
		{"age", OpStartsWith, "1", false},
		{"memberSince", OpLessThan, "2020-01-01", true},
		{"memberSince", OpContains, "2020", false},
		{"isVerified", OpEquals, true, true},
		{"isVerified", OpContains, "tr", false},
		{"tags", OpContains, "choir", true},
		{"tags", OpEquals, "choir", false},
	}

	for _, tc := range cases {
		req := Request{FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{{Field: tc.field, Operator: tc.operator, Value: tc.value}}},
		}}
		_, errs := Compile(req)
		if tc.ok && errs != nil {
			t.Errorf("%s %s: unexpected errors %v", tc.field, tc.operator, errs)
		}
		if !tc.ok && errs == nil {
			t.Errorf("%s %s: expected a compatibility error", tc.field, tc.operator)
		}
	}
}

// Older clients serialized every value as a string; those saved
// searches must still compile.
func TestCompileCoercesLegacyStrings(t *testing.T) {
	req := Request{
		GroupOperator: LogicalAnd,
		FilterGroups: []FilterGroup{
			{
				Operator: LogicalAnd,
				Filters: []FilterCriteria{
					{Field: "age", Operator: OpEquals, Value: "25"},
					{Field: "isVerified", Operator: OpEquals, Value: "true"},
				},
			},
		},
	}

	compiled, errs := Compile(req)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if compiled.FilterCount() != 2 {
		t.Errorf("FilterCount = %d, want 2", compiled.FilterCount())
	}
}

func TestRequestRoundTrip(t *testing.T) {
	in := Request{
		GroupOperator: LogicalAnd,
		FilterGroups: []FilterGroup{
			{
				Operator: LogicalOr,
				Filters: []FilterCriteria{
					{Field: "status", Operator: OpEquals, Value: "ACTIVE"},
					{Field: "age", Operator: OpBetween, Value: float64(18), MaxValue: float64(35)},
				},
			},
		},
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Request
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round-tripped request differs:\n in=%+v\nout=%+v", in, out)
	}
	if _, errs := Compile(out); errs != nil {
		t.Fatalf("round-tripped request no longer compiles: %v", errs)
	}
}
