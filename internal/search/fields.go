// Package search implements the dynamic member filter engine: a typed
// field catalog, an operator validator, and a compiler that turns a
// client-built boolean filter expression into a parameterized SQL WHERE
// fragment. The engine never executes queries itself; repositories feed
// the generated fragment into their own tenant-scoped statements.
package search

// FieldType declares the comparison semantics of a searchable field.
type FieldType string

const (
	FieldText       FieldType = "TEXT"
	FieldNumber     FieldType = "NUMBER"
	FieldDate       FieldType = "DATE"
	FieldBoolean    FieldType = "BOOLEAN"
	FieldCollection FieldType = "COLLECTION"
)

// joinSpec describes how a join-backed collection field relates members
// to its elements.
type joinSpec struct {
	table     string // join table name
	memberCol string // column referencing the member row
	elemCol   string // column holding the element value
}

// Field is one entry of the searchable-field catalog. Column is a SQL
// expression over the members row, which is always aliased "m" in
// generated queries. Collection fields are either an array column
// (join == nil) or a membership join table.
type Field struct {
	Name     string
	Type     FieldType
	Column   string
	join     *joinSpec
	sortable bool
}

// catalog is the exhaustive registry of fields a request may reference.
// Adding a searchable field means adding exactly one entry here; no
// other component names member columns.
var catalog = map[string]Field{
	// Personal info
	"firstName":   {Name: "firstName", Type: FieldText, Column: "m.first_name", sortable: true},
	"lastName":    {Name: "lastName", Type: FieldText, Column: "m.last_name", sortable: true},
	"phoneNumber": {Name: "phoneNumber", Type: FieldText, Column: "m.phone_number"},
	"email":       {Name: "email", Type: FieldText, Column: "m.email", sortable: true},

	// Demographics
	"sex":           {Name: "sex", Type: FieldText, Column: "m.sex"},
	"maritalStatus": {Name: "maritalStatus", Type: FieldText, Column: "m.marital_status"},
	"dateOfBirth":   {Name: "dateOfBirth", Type: FieldDate, Column: "m.date_of_birth", sortable: true},
	"age":           {Name: "age", Type: FieldNumber, Column: "date_part('year', age(m.date_of_birth))", sortable: true},

	// Church life
	"status":              {Name: "status", Type: FieldText, Column: "m.status", sortable: true},
	"memberSince":         {Name: "memberSince", Type: FieldDate, Column: "m.member_since", sortable: true},
	"isVerified":          {Name: "isVerified", Type: FieldBoolean, Column: "m.is_verified"},
	"profileCompleteness": {Name: "profileCompleteness", Type: FieldNumber, Column: "m.profile_completeness", sortable: true},

	// Collections
	"tags": {Name: "tags", Type: FieldCollection, Column: "m.tags"},
	"fellowships": {Name: "fellowships", Type: FieldCollection, join: &joinSpec{
		table:     "member_fellowships",
		memberCol: "member_id",
		elemCol:   "fellowship_id",
	}},

	// Location
	"city":    {Name: "city", Type: FieldText, Column: "m.city", sortable: true},
	"suburb":  {Name: "suburb", Type: FieldText, Column: "m.suburb"},
	"region":  {Name: "region", Type: FieldText, Column: "m.region"},
	"country": {Name: "country", Type: FieldText, Column: "m.country"},
}

// ResolveField looks up a catalog entry by its public name.
func ResolveField(name string) (Field, bool) {
	f, ok := catalog[name]
	return f, ok
}

// SortColumn resolves a public field name to a sortable SQL expression.
// Collection fields and unknown names are not sortable.
func SortColumn(name string) (string, bool) {
	f, ok := catalog[name]
	if !ok || !f.sortable {
		return "", false
	}
	return f.Column, true
}

// FieldNames returns every catalog entry name, for diagnostics.
func FieldNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}
