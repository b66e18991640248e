// Package query compiles record queries (where / order by / select) into
// lazy enumerable chains.
package query

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/okra-platform/arrgh/enumerable"
)

// Definition is the textual form of a query
type Definition struct {
	Where    []string
	OrderBy  []string
	Select   []string
	Distinct bool
	Limit    int
}

// Query is a compiled, reusable Definition
type Query struct {
	conditions []Condition
	sortKeys   []SortKey
	fields     []string
	distinct   bool
	limit      int
	logger     zerolog.Logger
}

// Compile parses and validates every part of def
func Compile(def Definition, logger zerolog.Logger) (*Query, error) {
	if def.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative, got %d", def.Limit)
	}

	q := &Query{
		fields:   def.Select,
		distinct: def.Distinct,
		limit:    def.Limit,
		logger:   logger,
	}

	for _, expr := range def.Where {
		c, err := ParseCondition(expr)
		if err != nil {
			return nil, err
		}
		q.conditions = append(q.conditions, c)
	}

	for _, expr := range def.OrderBy {
		k, err := ParseSortKey(expr)
		if err != nil {
			return nil, err
		}
		q.sortKeys = append(q.sortKeys, k)
	}

	for _, f := range def.Select {
		if f == "" {
			return nil, fmt.Errorf("empty select field")
		}
	}

	return q, nil
}

// Fields returns the projected fields, empty when whole records are kept
func (q *Query) Fields() []string {
	return q.fields
}

// Build composes the lazy sequence for records without evaluating it
func (q *Query) Build(records []Record) *enumerable.Enumerable[Record] {
	seq := enumerable.From(records)

	for _, c := range q.conditions {
		seq = seq.Where(func(r Record, _ int) bool {
			return c.Match(r)
		})
	}

	if len(q.sortKeys) > 0 {
		seq = q.order(seq).Enumerable
	}

	if len(q.fields) > 0 {
		seq = seq.Select(func(r Record, _ int) Record {
			return project(r, q.fields)
		})
	}

	if q.distinct {
		seq = seq.Union(enumerable.Empty[Record](), recordsEqual)
	}

	return seq
}

// Run evaluates the query over records
func (q *Query) Run(records []Record) ([]Record, error) {
	start := time.Now()
	seq := q.Build(records)

	var (
		result []Record
		err    error
	)
	if q.limit > 0 {
		result = make([]Record, 0, q.limit)
		err = seq.ForEach(func(r Record, _ int) bool {
			result = append(result, r)
			return len(result) < q.limit
		})
	} else {
		result, err = seq.ToArray()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate query: %w", err)
	}

	q.logger.Debug().
		Int("input", len(records)).
		Int("output", len(result)).
		Int("conditions", len(q.conditions)).
		Int("sortKeys", len(q.sortKeys)).
		Dur("elapsed", time.Since(start)).
		Msg("query evaluated")

	return result, nil
}

// order builds the OrderBy / ThenBy chain for the sort keys
func (q *Query) order(seq *enumerable.Enumerable[Record]) *enumerable.OrderedEnumerable[Record] {
	var ordered *enumerable.OrderedEnumerable[Record]
	for i, k := range q.sortKeys {
		switch {
		case i == 0 && k.Descending:
			ordered = enumerable.OrderByFuncDescending(seq, k.selector, CompareValues)
		case i == 0:
			ordered = enumerable.OrderByFunc(seq, k.selector, CompareValues)
		case k.Descending:
			ordered = enumerable.ThenByFuncDescending(ordered, k.selector, CompareValues)
		default:
			ordered = enumerable.ThenByFunc(ordered, k.selector, CompareValues)
		}
	}
	return ordered
}

func project(r Record, fields []string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		v, _ := r.Lookup(f)
		out[f] = v
	}
	return out
}

func recordsEqual(a, b Record) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !ValuesEqual(va, vb) {
			return false
		}
	}
	return true
}
