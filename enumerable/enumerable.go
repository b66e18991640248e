package enumerable

// Enumerable is the composition surface shared by every sequence. All
// non-terminal operations return a new lazy Enumerable; terminal operations
// drive a fresh cursor end to end and return any iteration error.
type Enumerable[T any] struct {
	source Sequence[T]
}

// Compile-time interface compliance checks
var (
	_ Sequence[int] = (*Enumerable[int])(nil)
	_ Sequence[int] = (*OrderedEnumerable[int])(nil)
	_ Sequence[int] = (*List[int])(nil)
	_ Sequence[int] = indexedSequence[int]{}
	_ Indexed[int]  = (*List[int])(nil)
)

// From wraps a materialized slice. The slice is not copied.
func From[T any](items []T) *Enumerable[T] {
	return FromIndexed[T](slice[T](items))
}

// Of wraps the given values
func Of[T any](items ...T) *Enumerable[T] {
	return From(items)
}

// Empty returns a sequence without elements
func Empty[T any]() *Enumerable[T] {
	return From[T](nil)
}

// FromIndexed wraps an indexed collection; cursors fail with
// CONCURRENT_MODIFICATION when its length changes mid-iteration.
func FromIndexed[T any](source Indexed[T]) *Enumerable[T] {
	return FromSequence[T](indexedSequence[T]{source: source})
}

// FromSequence wraps any sequence in the facade
func FromSequence[T any](source Sequence[T]) *Enumerable[T] {
	if e, ok := source.(*Enumerable[T]); ok {
		return e
	}
	return &Enumerable[T]{source: source}
}

// Iterator returns a fresh cursor
func (e *Enumerable[T]) Iterator() Iterator[T] {
	return e.source.Iterator()
}

// AsEnumerable hides the concrete type of the sequence behind a plain Enumerable
func (e *Enumerable[T]) AsEnumerable() *Enumerable[T] {
	return &Enumerable[T]{source: SequenceFunc[T](e.source.Iterator)}
}

// ForEach calls fn for every element with its index. Returning false from fn
// stops the iteration early.
func (e *Enumerable[T]) ForEach(fn func(T, int) bool) error {
	it := e.source.Iterator()
	for it.MoveNext() {
		if !fn(it.Current(), it.Index()) {
			break
		}
	}
	return it.Err()
}

// ToArray materializes the sequence into a new slice
func (e *Enumerable[T]) ToArray() ([]T, error) {
	return collect[T](e.source)
}

// Count returns the number of elements, or the number matching predicate when one is given
func (e *Enumerable[T]) Count(predicate ...func(T) bool) (int, error) {
	match := optionalPredicate(predicate)
	count := 0
	err := e.ForEach(func(v T, _ int) bool {
		if match(v) {
			count++
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Length is an alias of Count
func (e *Enumerable[T]) Length(predicate ...func(T) bool) (int, error) {
	return e.Count(predicate...)
}

// Filter lazily keeps the elements for which predicate returns true. The
// predicate receives the upstream index; the result is re-indexed from 0.
func (e *Enumerable[T]) Filter(predicate func(T, int) bool) *Enumerable[T] {
	return FromSequence[T](newWhereSequence[T](e, predicate))
}

// Where is an alias of Filter
func (e *Enumerable[T]) Where(predicate func(T, int) bool) *Enumerable[T] {
	return e.Filter(predicate)
}

// Map lazily transforms every element, keeping the element type. Use the
// package-level Select to change the type. A nil selector is the identity.
func (e *Enumerable[T]) Map(selector func(T, int) T) *Enumerable[T] {
	if selector == nil {
		selector = func(v T, _ int) T { return v }
	}
	return Select[T, T](e, selector)
}

// Select is an alias of Map
func (e *Enumerable[T]) Select(selector func(T, int) T) *Enumerable[T] {
	return e.Map(selector)
}

// First returns the first element, or the first element matching predicate.
// It fails with EMPTY_COLLECTION when the sequence yields nothing and with
// NO_MATCH when no element satisfies the predicate.
func (e *Enumerable[T]) First(predicate ...func(T) bool) (T, error) {
	var (
		first T
		found bool
		empty = true
	)
	match := optionalPredicate(predicate)
	err := e.ForEach(func(v T, _ int) bool {
		empty = false
		if match(v) {
			first = v
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return first, err
	}
	if empty {
		return first, ErrEmptyCollection
	}
	if !found {
		return first, ErrNoMatch
	}
	return first, nil
}

// Tail returns every element except the first
func (e *Enumerable[T]) Tail() ([]T, error) {
	items, err := e.ToArray()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	return items[1:], nil
}

// Contains reports whether the sequence holds an element equal to elem. A
// nil comparer uses DefaultEqual.
func (e *Enumerable[T]) Contains(elem T, eq EqualityComparer[T]) (bool, error) {
	index, err := e.IndexOf(elem, 0, eq)
	if err != nil {
		return false, err
	}
	return index >= 0, nil
}

// IndexOf returns the position of the first element equal to elem at or
// after fromIndex, or -1 when there is none.
func (e *Enumerable[T]) IndexOf(elem T, fromIndex int, eq EqualityComparer[T]) (int, error) {
	eq = equalityOrDefault(eq)
	found := -1
	err := e.ForEach(func(v T, i int) bool {
		if i >= fromIndex && eq(v, elem) {
			found = i
			return false
		}
		return true
	})
	if err != nil {
		return -1, err
	}
	return found, nil
}

// UnionAll eagerly concatenates this sequence and other
func (e *Enumerable[T]) UnionAll(other Sequence[T]) (*Enumerable[T], error) {
	head, err := e.ToArray()
	if err != nil {
		return nil, err
	}
	tail, err := collect(other)
	if err != nil {
		return nil, err
	}
	return From(append(head, tail...)), nil
}

// Union lazily concatenates this sequence and other, skipping every element
// equal (per eq, DefaultEqual when nil) to one already yielded.
func (e *Enumerable[T]) Union(other Sequence[T], eq EqualityComparer[T]) *Enumerable[T] {
	return FromSequence[T](&unionSequence[T]{
		first:  e,
		second: other,
		eq:     equalityOrDefault(eq),
	})
}

// ToList copies the elements into a new List
func (e *Enumerable[T]) ToList() (*List[T], error) {
	items, err := e.ToArray()
	if err != nil {
		return nil, err
	}
	return NewList(items...), nil
}

// collect drains a fresh cursor of source into a slice
func collect[T any](source Sequence[T]) ([]T, error) {
	items := make([]T, 0)
	it := source.Iterator()
	for it.MoveNext() {
		items = append(items, it.Current())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func optionalPredicate[T any](predicate []func(T) bool) func(T) bool {
	if len(predicate) == 0 || predicate[0] == nil {
		return func(T) bool { return true }
	}
	return predicate[0]
}
