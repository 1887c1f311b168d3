package search

import "fmt"

// Criterion is a validated leaf: a resolved field, a compatible
// operator, and a typed value of the operator's declared arity.
type Criterion struct {
	Field    Field
	Operator Operator
	Value    Value
}

type compiledGroup struct {
	criteria []Criterion
	operator LogicalOperator
}

// Compiled is a fully validated request, ready for SQL generation.
type Compiled struct {
	groups        []compiledGroup
	groupOperator LogicalOperator
	filterCount   int

	// Warnings records tolerated oddities, such as a value supplied to
	// IS_NULL. Callers log them; they never fail the request.
	Warnings []string
}

// FilterCount returns the number of leaf criteria that were compiled.
func (c *Compiled) FilterCount() int {
	return c.filterCount
}

// Compile validates every criterion of the request against the field
// catalog and operator tables. All criteria are checked even after the
// first failure so the caller receives the complete error list; if any
// error is returned the request must not be executed.
func Compile(req Request) (*Compiled, []FieldError) {
	var errs []FieldError

	if !req.GroupOperator.valid() {
		errs = append(errs, FieldError{
			Operator: string(req.GroupOperator),
			Reason:   "unknown group operator",
		})
	}

	compiled := &Compiled{groupOperator: req.GroupOperator}

	for gi, group := range req.FilterGroups {
		if !group.Operator.valid() {
			errs = append(errs, FieldError{
				Operator: string(group.Operator),
				Reason:   fmt.Sprintf("group %d: unknown logical operator", gi),
			})
		}

		// An empty group cannot express anything; rejecting it beats
		// guessing between vacuous-true and vacuous-false.
		if len(group.Filters) == 0 {
			errs = append(errs, FieldError{
				Reason: fmt.Sprintf("group %d: must contain at least one filter", gi),
			})
			continue
		}

		cg := compiledGroup{operator: group.Operator, criteria: make([]Criterion, 0, len(group.Filters))}
		for _, raw := range group.Filters {
			criterion, fieldErr, warning := validateCriteria(raw)
			if warning != "" {
				compiled.Warnings = append(compiled.Warnings, warning)
			}
			if fieldErr != nil {
				errs = append(errs, *fieldErr)
				continue
			}
			cg.criteria = append(cg.criteria, criterion)
			compiled.filterCount++
		}
		compiled.groups = append(compiled.groups, cg)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return compiled, nil
}

// validateCriteria checks a single wire criterion: field resolution,
// operator compatibility, and value arity/coercion.
func validateCriteria(raw FilterCriteria) (Criterion, *FieldError, string) {
	fail := func(reason string) (Criterion, *FieldError, string) {
		return Criterion{}, &FieldError{
			Field:    raw.Field,
			Operator: string(raw.Operator),
			Reason:   reason,
		}, ""
	}

	field, ok := ResolveField(raw.Field)
	if !ok {
		return fail("unknown field")
	}

	if !knownOperator(raw.Operator) {
		return fail("unknown operator")
	}

	if !operatorSupports(field.Type, raw.Operator) {
		return fail(fmt.Sprintf("operator not supported for %s field", field.Type))
	}

	criterion := Criterion{Field: field, Operator: raw.Operator}

	switch operatorArity[raw.Operator] {
	case ArityNone:
		criterion.Value = Value{Kind: ValueNone}
		if raw.Value != nil || raw.MaxValue != nil {
			warning := fmt.Sprintf("%s %s: supplied value ignored", raw.Field, raw.Operator)
			return criterion, nil, warning
		}
		return criterion, nil, ""

	case ArityScalar:
		scalar, err := coerceScalar(field, raw.Value)
		if err != nil {
			return fail(err.Error())
		}
		criterion.Value = Value{Kind: ValueScalar, Scalar: scalar}
		return criterion, nil, ""

	case ArityList:
		list, err := coerceList(field, raw.Value)
		if err != nil {
			return fail(err.Error())
		}
		criterion.Value = Value{Kind: ValueList, List: list}
		return criterion, nil, ""

	case ArityRange:
		if raw.Value == nil || raw.MaxValue == nil {
			return fail("both value and maxValue are required")
		}
		minScalar, err := coerceScalar(field, raw.Value)
		if err != nil {
			return fail("value: " + err.Error())
		}
		maxScalar, err := coerceScalar(field, raw.MaxValue)
		if err != nil {
			return fail("maxValue: " + err.Error())
		}
		// Fail fast instead of silently swapping reversed bounds.
		if !minScalar.lessOrEqual(maxScalar) {
			return fail("value must not exceed maxValue")
		}
		criterion.Value = Value{Kind: ValueRange, Min: minScalar, Max: maxScalar}
		return criterion, nil, ""
	}

	return fail("unknown operator")
}
