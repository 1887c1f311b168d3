package search

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// dateLayout is the wire format for DATE values.
const dateLayout = "2006-01-02"

type scalarKind int

const (
	scalarText scalarKind = iota
	scalarNumber
	scalarDate
	scalarBool
	scalarUUID
)

// Scalar is a typed leaf value, the tagged-variant replacement for the
// untyped values arriving on the wire. The kind is chosen by the field's
// declared type during validation, so predicate building never casts.
type Scalar struct {
	kind    scalarKind
	text    string
	number  float64
	date    time.Time
	boolean bool
	id      uuid.UUID
}

// arg returns the value in the shape handed to the SQL driver.
func (s Scalar) arg() any {
	switch s.kind {
	case scalarNumber:
		return s.number
	case scalarDate:
		return s.date
	case scalarBool:
		return s.boolean
	case scalarUUID:
		return s.id
	default:
		return s.text
	}
}

// lessOrEqual reports s <= other for ordered kinds. Unordered kinds
// never reach here; validation restricts BETWEEN to NUMBER and DATE.
func (s Scalar) lessOrEqual(other Scalar) bool {
	switch s.kind {
	case scalarNumber:
		return s.number <= other.number
	case scalarDate:
		return !s.date.After(other.date)
	default:
		return true
	}
}

// ValueKind tags the arity variant carried by a Value.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueScalar
	ValueList
	ValueRange
)

// Value is the validated, arity-tagged operand of a criterion.
type Value struct {
	Kind   ValueKind
	Scalar Scalar
	List   []Scalar
	Min    Scalar
	Max    Scalar
}

// coerceScalar converts one raw JSON value into the typed scalar the
// field requires. Numbers arrive as float64, but numeric and boolean
// strings are accepted as well since saved searches built by older
// clients serialized everything as text.
func coerceScalar(f Field, raw any) (Scalar, error) {
	if raw == nil {
		return Scalar{}, fmt.Errorf("value must not be null")
	}

	switch f.Type {
	case FieldText:
		text, ok := raw.(string)
		if !ok {
			return Scalar{}, fmt.Errorf("expected text")
		}
		return Scalar{kind: scalarText, text: text}, nil

	case FieldNumber:
		switch v := raw.(type) {
		case float64:
			return Scalar{kind: scalarNumber, number: v}, nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return Scalar{}, fmt.Errorf("expected a number")
			}
			return Scalar{kind: scalarNumber, number: parsed}, nil
		default:
			return Scalar{}, fmt.Errorf("expected a number")
		}

	case FieldDate:
		text, ok := raw.(string)
		if !ok {
			return Scalar{}, fmt.Errorf("expected an ISO date (YYYY-MM-DD)")
		}
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(text))
		if err != nil {
			return Scalar{}, fmt.Errorf("expected an ISO date (YYYY-MM-DD)")
		}
		return Scalar{kind: scalarDate, date: parsed}, nil

	case FieldBoolean:
		switch v := raw.(type) {
		case bool:
			return Scalar{kind: scalarBool, boolean: v}, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return Scalar{}, fmt.Errorf("expected a boolean")
			}
			return Scalar{kind: scalarBool, boolean: parsed}, nil
		default:
			return Scalar{}, fmt.Errorf("expected a boolean")
		}

	case FieldCollection:
		text, ok := raw.(string)
		if !ok {
			return Scalar{}, fmt.Errorf("expected a collection element")
		}
		if f.join != nil {
			id, err := uuid.Parse(strings.TrimSpace(text))
			if err != nil {
				return Scalar{}, fmt.Errorf("expected a %s id", strings.TrimSuffix(f.Name, "s"))
			}
			return Scalar{kind: scalarUUID, id: id}, nil
		}
		return Scalar{kind: scalarText, text: text}, nil
	}

	return Scalar{}, fmt.Errorf("unsupported field type %s", f.Type)
}

// coerceList converts a raw JSON array into typed scalars. Empty lists
// are rejected: an IN that can match nothing is a client bug, not an
// intended "match none".
func coerceList(f Field, raw any) ([]Scalar, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of values")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("expected a list with at least one element")
	}

	list := make([]Scalar, 0, len(items))
	for i, item := range items {
		s, err := coerceScalar(f, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %s", i, err)
		}
		list = append(list, s)
	}
	return list, nil
}
