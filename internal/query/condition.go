package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a comparison used in a where condition
type Operator string

// Supported operators, longest first so that "<=" wins over "<"
const (
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
	OpContains     Operator = "~="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
)

var operators = []Operator{OpEqual, OpNotEqual, OpLessEqual, OpGreaterEqual, OpContains, OpLess, OpGreater}

// Condition is a parsed "<field> <op> <literal>" expression
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ParseCondition parses a where expression such as `age >= 30` or
// `name == "Bill Gates"`.
func ParseCondition(expr string) (Condition, error) {
	pos, op := -1, Operator("")
	for _, candidate := range operators {
		i := strings.Index(expr, string(candidate))
		if i < 0 {
			continue
		}
		if pos < 0 || i < pos {
			pos, op = i, candidate
		}
	}
	if pos < 0 {
		return Condition{}, fmt.Errorf("condition %q has no operator", expr)
	}

	field := strings.TrimSpace(expr[:pos])
	if field == "" {
		return Condition{}, fmt.Errorf("condition %q has no field", expr)
	}

	literal := strings.TrimSpace(expr[pos+len(op):])
	value, err := parseLiteral(literal)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %q: %w", expr, err)
	}

	return Condition{Field: field, Operator: op, Value: value}, nil
}

func parseLiteral(s string) (any, error) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], nil
	}
	switch s {
	case "":
		return nil, fmt.Errorf("missing value")
	case "null":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return s, nil
}

// Match evaluates the condition against a record. Missing fields compare as null.
func (c Condition) Match(r Record) bool {
	v, _ := r.Lookup(c.Field)
	switch c.Operator {
	case OpEqual:
		return ValuesEqual(v, c.Value)
	case OpNotEqual:
		return !ValuesEqual(v, c.Value)
	case OpLess:
		return CompareValues(v, c.Value) < 0
	case OpLessEqual:
		return CompareValues(v, c.Value) <= 0
	case OpGreater:
		return CompareValues(v, c.Value) > 0
	case OpGreaterEqual:
		return CompareValues(v, c.Value) >= 0
	case OpContains:
		if v == nil {
			return false
		}
		return strings.Contains(fmt.Sprint(v), fmt.Sprint(c.Value))
	default:
		return false
	}
}

// String renders the condition back into its expression form
func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Operator, c.Value)
}

// SortKey is a parsed order-by key; a leading "-" means descending
type SortKey struct {
	Field      string
	Descending bool
}

// ParseSortKey parses "field" or "-field"
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	key := SortKey{Field: s}
	if strings.HasPrefix(s, "-") {
		key = SortKey{Field: strings.TrimSpace(s[1:]), Descending: true}
	} else if strings.HasPrefix(s, "+") {
		key.Field = strings.TrimSpace(s[1:])
	}
	if key.Field == "" {
		return SortKey{}, fmt.Errorf("empty sort key %q", s)
	}
	return key, nil
}

func (k SortKey) selector(r Record) any {
	value, _ := r.Lookup(k.Field)
	return value
}
