package repository

import (
	"strings"
	"testing"
)

func TestSearchWhereIsTenantScoped(t *testing.T) {
	where := searchWhere("m.status = $2")

	requiredFragments := []string{
		"m.church_id = $1",
		"m.deleted_at IS NULL",
	}
	for _, fragment := range requiredFragments {
		if !strings.Contains(where, fragment) {
			t.Fatalf("expected tenant-scoped fragment %q in %q", fragment, where)
		}
	}

	if !strings.HasPrefix(where, tenantScope) {
		t.Fatalf("WHERE clause must lead with the tenant scope, got %q", where)
	}
	if !strings.HasSuffix(where, "AND (m.status = $2)") {
		t.Fatalf("filter must be appended inside its own parentheses, got %q", where)
	}
}

func TestSearchWhereParenthesizesFilterDisjunctions(t *testing.T) {
	where := searchWhere("m.status = $2 OR m.status = $3")

	if !strings.HasSuffix(where, "(m.status = $2 OR m.status = $3)") {
		t.Fatalf("OR filters must not escape their parentheses, got %q", where)
	}
}
