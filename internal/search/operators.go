package search

// Operator is a filter comparison operator.
type Operator string

const (
	// Text operators (all comparisons case-insensitive by contract)
	OpEquals     Operator = "EQUALS"
	OpNotEquals  Operator = "NOT_EQUALS"
	OpContains   Operator = "CONTAINS"
	OpStartsWith Operator = "STARTS_WITH"
	OpEndsWith   Operator = "ENDS_WITH"

	// Ordering operators for numbers and dates
	OpGreaterThan    Operator = "GREATER_THAN"
	OpLessThan       Operator = "LESS_THAN"
	OpGreaterOrEqual Operator = "GREATER_OR_EQUAL"
	OpLessOrEqual    Operator = "LESS_OR_EQUAL"
	OpBetween        Operator = "BETWEEN"

	// Set operators
	OpIn    Operator = "IN"
	OpNotIn Operator = "NOT_IN"

	// Presence operators
	OpIsNull    Operator = "IS_NULL"
	OpIsNotNull Operator = "IS_NOT_NULL"
)

// LogicalOperator combines filters within a group or groups within a
// request. An empty value defaults to AND.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "AND"
	LogicalOr  LogicalOperator = "OR"
)

func (op LogicalOperator) valid() bool {
	return op == "" || op == LogicalAnd || op == LogicalOr
}

// sqlJoin returns the SQL connective for the operator, defaulting to AND.
func (op LogicalOperator) sqlJoin() string {
	if op == LogicalOr {
		return " OR "
	}
	return " AND "
}

// Arity declares the value shape an operator requires.
type Arity int

const (
	ArityNone   Arity = iota // no value
	ArityScalar              // single value
	ArityList                // one or more values
	ArityRange               // value + maxValue pair
)

// operatorArity is the declared value shape per operator, built once.
var operatorArity = map[Operator]Arity{
	OpEquals:         ArityScalar,
	OpNotEquals:      ArityScalar,
	OpContains:       ArityScalar,
	OpStartsWith:     ArityScalar,
	OpEndsWith:       ArityScalar,
	OpGreaterThan:    ArityScalar,
	OpLessThan:       ArityScalar,
	OpGreaterOrEqual: ArityScalar,
	OpLessOrEqual:    ArityScalar,
	OpBetween:        ArityRange,
	OpIn:             ArityList,
	OpNotIn:          ArityList,
	OpIsNull:         ArityNone,
	OpIsNotNull:      ArityNone,
}

// compatibleOperators enumerates the legal operators per field type.
// An operator used against an incompatible type is a validation error,
// never a silent no-op.
var compatibleOperators = map[FieldType][]Operator{
	FieldText: {
		OpEquals, OpNotEquals, OpContains, OpStartsWith, OpEndsWith,
		OpIn, OpNotIn, OpIsNull, OpIsNotNull,
	},
	FieldNumber: {
		OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
		OpGreaterOrEqual, OpLessOrEqual, OpBetween,
		OpIn, OpNotIn, OpIsNull, OpIsNotNull,
	},
	FieldDate: {
		OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
		OpGreaterOrEqual, OpLessOrEqual, OpBetween,
		OpIn, OpNotIn, OpIsNull, OpIsNotNull,
	},
	FieldBoolean: {
		OpEquals, OpNotEquals, OpIsNull, OpIsNotNull,
	},
	FieldCollection: {
		OpContains, OpIn, OpNotIn, OpIsNull, OpIsNotNull,
	},
}

// compatibility is the (field type, operator) lookup table derived from
// compatibleOperators at startup.
var compatibility = func() map[FieldType]map[Operator]bool {
	m := make(map[FieldType]map[Operator]bool, len(compatibleOperators))
	for ft, ops := range compatibleOperators {
		set := make(map[Operator]bool, len(ops))
		for _, op := range ops {
			set[op] = true
		}
		m[ft] = set
	}
	return m
}()

// knownOperator reports whether op is part of the operator vocabulary.
func knownOperator(op Operator) bool {
	_, ok := operatorArity[op]
	return ok
}

// operatorSupports reports whether op is legal for the given field type.
func operatorSupports(ft FieldType, op Operator) bool {
	return compatibility[ft][op]
}
