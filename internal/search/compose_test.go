package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustCompile(t *testing.T, req Request) *Compiled {
	t.Helper()
	compiled, errs := Compile(req)
	if errs != nil {
		t.Fatalf("compile errors: %v", errs)
	}
	return compiled
}

func singleFilter(field string, op Operator, value any) Request {
	return Request{FilterGroups: []FilterGroup{
		{Filters: []FilterCriteria{{Field: field, Operator: op, Value: value}}},
	}}
}

func TestWhereEmptyExpression(t *testing.T) {
	compiled := mustCompile(t, Request{})
	args := NewArgs()
	if got := compiled.Where(args); got != "TRUE" {
		t.Fatalf("Where = %q, want TRUE", got)
	}
	if len(args.Values()) != 0 {
		t.Errorf("expected no arguments, got %v", args.Values())
	}
}

func TestWhereContinuesSeededNumbering(t *testing.T) {
	compiled := mustCompile(t, singleFilter("firstName", OpEquals, "John"))

	churchID := uuid.New()
	args := NewArgs(churchID)
	got := compiled.Where(args)

	want := "(lower(m.first_name) = $2)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	wantArgs := []any{churchID, "john"}
	if !reflect.DeepEqual(args.Values(), wantArgs) {
		t.Errorf("args = %v, want %v", args.Values(), wantArgs)
	}
}

func TestWhereGroupComposition(t *testing.T) {
	req := Request{
		GroupOperator: LogicalAnd,
		FilterGroups: []FilterGroup{
			{
				Operator: LogicalOr,
				Filters: []FilterCriteria{
					{Field: "status", Operator: OpEquals, Value: "ACTIVE"},
					{Field: "status", Operator: OpEquals, Value: "VISITOR"},
				},
			},
			{
				Operator: LogicalAnd,
				Filters: []FilterCriteria{
					{Field: "city", Operator: OpEquals, Value: "Accra"},
				},
			},
		},
	}

	args := NewArgs()
	got := mustCompile(t, req).Where(args)

	want := "(lower(m.status) = $1 OR lower(m.status) = $2) AND (lower(m.city) = $3)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	wantArgs := []any{"active", "visitor", "accra"}
	if !reflect.DeepEqual(args.Values(), wantArgs) {
		t.Errorf("args = %v, want %v", args.Values(), wantArgs)
	}
}

func TestWhereOrGroupOperator(t *testing.T) {
	req := Request{
		GroupOperator: LogicalOr,
		FilterGroups: []FilterGroup{
			{Filters: []FilterCriteria{{Field: "city", Operator: OpEquals, Value: "Accra"}}},
			{Filters: []FilterCriteria{{Field: "region", Operator: OpEquals, Value: "Ashanti"}}},
		},
	}

	args := NewArgs()
	got := mustCompile(t, req).Where(args)
	want := "(lower(m.city) = $1) OR (lower(m.region) = $2)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
}

func TestWhereTextPredicates(t *testing.T) {
	cases := []struct {
		name     string
		operator Operator
		value    any
		wantSQL  string
		wantArg  any
	}{
		{"equals lowercases", OpEquals, "John", "(lower(m.first_name) = $1)", "john"},
		{"not equals", OpNotEquals, "John", "(lower(m.first_name) <> $1)", "john"},
		{"contains", OpContains, "oh", "(m.first_name ILIKE $1)", "%oh%"},
		{"starts with", OpStartsWith, "Jo", "(m.first_name ILIKE $1)", "Jo%"},
		{"ends with", OpEndsWith, "hn", "(m.first_name ILIKE $1)", "%hn"},
		{"contains escapes metacharacters", OpContains, `50%_a\b`, "(m.first_name ILIKE $1)", `%50\%\_a\\b%`},
		{"in lowercases", OpIn, []any{"John", "MARY"}, "(lower(m.first_name) = ANY($1))", []string{"john", "mary"}},
		{"not in", OpNotIn, []any{"John"}, "(lower(m.first_name) <> ALL($1))", []string{"john"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := NewArgs()
			got := mustCompile(t, singleFilter("firstName", tc.operator, tc.value)).Where(args)
			if got != tc.wantSQL {
				t.Fatalf("Where = %q, want %q", got, tc.wantSQL)
			}
			if !reflect.DeepEqual(args.Values()[0], tc.wantArg) {
				t.Errorf("arg = %#v, want %#v", args.Values()[0], tc.wantArg)
			}
		})
	}
}

func TestWhereTextNullTreatsEmptyAsAbsent(t *testing.T) {
	args := NewArgs()
	got := mustCompile(t, singleFilter("email", OpIsNull, nil)).Where(args)
	want := "((m.email IS NULL OR m.email = ''))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("email", OpIsNotNull, nil)).Where(args)
	want = "((m.email IS NOT NULL AND m.email <> ''))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
}

func TestWhereNumberAndDatePredicates(t *testing.T) {
	args := NewArgs()
	got := mustCompile(t, singleFilter("age", OpGreaterOrEqual, float64(18))).Where(args)
	want := "(date_part('year', age(m.date_of_birth)) >= $1)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if args.Values()[0] != float64(18) {
		t.Errorf("arg = %v", args.Values()[0])
	}

	args = NewArgs()
	req := Request{FilterGroups: []FilterGroup{
		{Filters: []FilterCriteria{{
			Field: "memberSince", Operator: OpBetween,
			Value: "2020-01-01", MaxValue: "2020-12-31",
		}}},
	}}
	got = mustCompile(t, req).Where(args)
	want = "(m.member_since BETWEEN $1 AND $2)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	lo, ok := args.Values()[0].(time.Time)
	if !ok || !lo.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("lower bound = %v", args.Values()[0])
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("age", OpIn, []any{float64(20), float64(30)})).Where(args)
	want = "(date_part('year', age(m.date_of_birth)) = ANY($1))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(args.Values()[0], []float64{20, 30}) {
		t.Errorf("arg = %#v", args.Values()[0])
	}
}

func TestWhereTagPredicates(t *testing.T) {
	args := NewArgs()
	got := mustCompile(t, singleFilter("tags", OpContains, "Choir")).Where(args)
	want := "($1 = ANY(m.tags))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if args.Values()[0] != "choir" {
		t.Errorf("arg = %v, want lowercased element", args.Values()[0])
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("tags", OpIn, []any{"choir", "usher"})).Where(args)
	want = "(m.tags && $1)"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}

	// NOT_IN must keep members that have no tags at all.
	args = NewArgs()
	got = mustCompile(t, singleFilter("tags", OpNotIn, []any{"choir"})).Where(args)
	want = "(NOT (coalesce(m.tags, '{}') && $1))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("tags", OpIsNull, nil)).Where(args)
	want = "((m.tags IS NULL OR cardinality(m.tags) = 0))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if len(args.Values()) != 0 {
		t.Errorf("IS_NULL should bind no arguments, got %v", args.Values())
	}
}

func TestWhereFellowshipPredicates(t *testing.T) {
	id := uuid.New()

	args := NewArgs()
	got := mustCompile(t, singleFilter("fellowships", OpContains, id.String())).Where(args)
	want := "(EXISTS (SELECT 1 FROM member_fellowships jt WHERE jt.member_id = m.id AND jt.fellowship_id = $1))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if args.Values()[0] != id {
		t.Errorf("arg = %v, want %v", args.Values()[0], id)
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("fellowships", OpIn, []any{id.String()})).Where(args)
	want = "(EXISTS (SELECT 1 FROM member_fellowships jt WHERE jt.member_id = m.id AND jt.fellowship_id = ANY($1)))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(args.Values()[0], []uuid.UUID{id}) {
		t.Errorf("arg = %#v", args.Values()[0])
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("fellowships", OpNotIn, []any{id.String()})).Where(args)
	want = "(NOT EXISTS (SELECT 1 FROM member_fellowships jt WHERE jt.member_id = m.id AND jt.fellowship_id = ANY($1)))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}

	args = NewArgs()
	got = mustCompile(t, singleFilter("fellowships", OpIsNull, nil)).Where(args)
	want = "(NOT EXISTS (SELECT 1 FROM member_fellowships jt WHERE jt.member_id = m.id))"
	if got != want {
		t.Fatalf("Where = %q, want %q", got, want)
	}
}

func TestWhereInvalidFellowshipID(t *testing.T) {
	_, errs := Compile(singleFilter("fellowships", OpContains, "not-a-uuid"))
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
}
