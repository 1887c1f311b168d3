package search

import "testing"

func TestResolveField(t *testing.T) {
	f, ok := ResolveField("dateOfBirth")
	if !ok {
		t.Fatal("dateOfBirth should resolve")
	}
	if f.Type != FieldDate || f.Column != "m.date_of_birth" {
		t.Errorf("unexpected field: %+v", f)
	}

	if _, ok := ResolveField("DateOfBirth"); ok {
		t.Error("field names are case-sensitive")
	}
}

func TestSortColumn(t *testing.T) {
	col, ok := SortColumn("lastName")
	if !ok || col != "m.last_name" {
		t.Fatalf("SortColumn(lastName) = %q, %v", col, ok)
	}

	if _, ok := SortColumn("tags"); ok {
		t.Error("collection fields must not be sortable")
	}
	if _, ok := SortColumn("suburb"); ok {
		t.Error("suburb is not sortable")
	}
	if _, ok := SortColumn("nope"); ok {
		t.Error("unknown fields must not be sortable")
	}
}
