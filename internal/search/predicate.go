package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArgList accumulates positional SQL arguments. Repositories seed it
// with their own leading arguments (tenant scope first), then hand it
// to the compiled expression so generated placeholders continue the
// same numbering.
type ArgList struct {
	values []any
}

// NewArgs creates an argument list holding the given leading values.
func NewArgs(leading ...any) *ArgList {
	return &ArgList{values: leading}
}

// Add appends a value and returns its placeholder, e.g. "$3".
func (a *ArgList) Add(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the accumulated arguments in placeholder order.
func (a *ArgList) Values() []any {
	return a.values
}

// likeEscaper neutralizes LIKE metacharacters in user input. Postgres
// treats backslash as the default escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildPredicate renders one validated criterion as a SQL fragment,
// appending its arguments to args. Pure translation: validation has
// already guaranteed the (type, operator, arity) combination is legal.
func buildPredicate(c Criterion, args *ArgList) string {
	if c.Field.Type == FieldCollection {
		return buildCollectionPredicate(c, args)
	}

	col := c.Field.Column

	switch c.Operator {
	case OpEquals:
		if c.Field.Type == FieldText {
			return fmt.Sprintf("lower(%s) = %s", col, args.Add(strings.ToLower(c.Value.Scalar.text)))
		}
		return fmt.Sprintf("%s = %s", col, args.Add(c.Value.Scalar.arg()))

	case OpNotEquals:
		if c.Field.Type == FieldText {
			return fmt.Sprintf("lower(%s) <> %s", col, args.Add(strings.ToLower(c.Value.Scalar.text)))
		}
		return fmt.Sprintf("%s <> %s", col, args.Add(c.Value.Scalar.arg()))

	case OpContains:
		return fmt.Sprintf("%s ILIKE %s", col, args.Add("%"+likeEscaper.Replace(c.Value.Scalar.text)+"%"))

	case OpStartsWith:
		return fmt.Sprintf("%s ILIKE %s", col, args.Add(likeEscaper.Replace(c.Value.Scalar.text)+"%"))

	case OpEndsWith:
		return fmt.Sprintf("%s ILIKE %s", col, args.Add("%"+likeEscaper.Replace(c.Value.Scalar.text)))

	case OpGreaterThan:
		return fmt.Sprintf("%s > %s", col, args.Add(c.Value.Scalar.arg()))

	case OpLessThan:
		return fmt.Sprintf("%s < %s", col, args.Add(c.Value.Scalar.arg()))

	case OpGreaterOrEqual:
		return fmt.Sprintf("%s >= %s", col, args.Add(c.Value.Scalar.arg()))

	case OpLessOrEqual:
		return fmt.Sprintf("%s <= %s", col, args.Add(c.Value.Scalar.arg()))

	case OpBetween:
		// Inclusive on both ends.
		return fmt.Sprintf("%s BETWEEN %s AND %s", col,
			args.Add(c.Value.Min.arg()), args.Add(c.Value.Max.arg()))

	case OpIn:
		if c.Field.Type == FieldText {
			return fmt.Sprintf("lower(%s) = ANY(%s)", col, args.Add(loweredTexts(c.Value.List)))
		}
		return fmt.Sprintf("%s = ANY(%s)", col, args.Add(listArg(c.Value.List)))

	case OpNotIn:
		if c.Field.Type == FieldText {
			return fmt.Sprintf("lower(%s) <> ALL(%s)", col, args.Add(loweredTexts(c.Value.List)))
		}
		return fmt.Sprintf("%s <> ALL(%s)", col, args.Add(listArg(c.Value.List)))

	case OpIsNull:
		if c.Field.Type == FieldText {
			// Absent and empty text are indistinguishable to users.
			return fmt.Sprintf("(%s IS NULL OR %s = '')", col, col)
		}
		return fmt.Sprintf("%s IS NULL", col)

	case OpIsNotNull:
		if c.Field.Type == FieldText {
			return fmt.Sprintf("(%s IS NOT NULL AND %s <> '')", col, col)
		}
		return fmt.Sprintf("%s IS NOT NULL", col)
	}

	// Unreachable after validation.
	return "FALSE"
}

// buildCollectionPredicate handles the two collection shapes: text[]
// columns (tags, stored lowercased) and membership join tables
// (fellowships). CONTAINS tests a single element, IN tests set
// intersection, NOT_IN requires an empty intersection.
func buildCollectionPredicate(c Criterion, args *ArgList) string {
	if c.Field.join == nil {
		return buildArrayPredicate(c, args)
	}
	return buildJoinPredicate(c, args)
}

func buildArrayPredicate(c Criterion, args *ArgList) string {
	col := c.Field.Column

	switch c.Operator {
	case OpContains:
		return fmt.Sprintf("%s = ANY(%s)", args.Add(strings.ToLower(c.Value.Scalar.text)), col)
	case OpIn:
		return fmt.Sprintf("%s && %s", col, args.Add(loweredTexts(c.Value.List)))
	case OpNotIn:
		// coalesce keeps members without tags in the result set.
		return fmt.Sprintf("NOT (coalesce(%s, '{}') && %s)", col, args.Add(loweredTexts(c.Value.List)))
	case OpIsNull:
		return fmt.Sprintf("(%s IS NULL OR cardinality(%s) = 0)", col, col)
	case OpIsNotNull:
		return fmt.Sprintf("(%s IS NOT NULL AND cardinality(%s) > 0)", col, col)
	}
	return "FALSE"
}

func buildJoinPredicate(c Criterion, args *ArgList) string {
	j := c.Field.join
	exists := func(condition string) string {
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s jt WHERE jt.%s = m.id AND %s)",
			j.table, j.memberCol, condition)
	}

	switch c.Operator {
	case OpContains:
		return exists(fmt.Sprintf("jt.%s = %s", j.elemCol, args.Add(c.Value.Scalar.arg())))
	case OpIn:
		return exists(fmt.Sprintf("jt.%s = ANY(%s)", j.elemCol, args.Add(uuidList(c.Value.List))))
	case OpNotIn:
		return "NOT " + exists(fmt.Sprintf("jt.%s = ANY(%s)", j.elemCol, args.Add(uuidList(c.Value.List))))
	case OpIsNull:
		return fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s jt WHERE jt.%s = m.id)", j.table, j.memberCol)
	case OpIsNotNull:
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s jt WHERE jt.%s = m.id)", j.table, j.memberCol)
	}
	return "FALSE"
}

// loweredTexts collects list elements as lowercased strings; pgx binds
// []string as text[].
func loweredTexts(list []Scalar) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToLower(s.text)
	}
	return out
}

// listArg collects a typed list into the slice shape pgx binds as a
// Postgres array. Validation guarantees a homogeneous list.
func listArg(list []Scalar) any {
	if len(list) == 0 {
		return []string{}
	}
	switch list[0].kind {
	case scalarNumber:
		out := make([]float64, len(list))
		for i, s := range list {
			out[i] = s.number
		}
		return out
	case scalarDate:
		out := make([]time.Time, len(list))
		for i, s := range list {
			out[i] = s.date
		}
		return out
	default:
		out := make([]string, len(list))
		for i, s := range list {
			out[i] = s.text
		}
		return out
	}
}

func uuidList(list []Scalar) []uuid.UUID {
	out := make([]uuid.UUID, len(list))
	for i, s := range list {
		out[i] = s.id
	}
	return out
}
