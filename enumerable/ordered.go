package enumerable

import "cmp"

const (
	ascending  = 1
	descending = -1
)

// orderLevel is one key of a multi-key sort
type orderLevel[T any] struct {
	compare   func(x, y T) int
	direction int
}

// OrderedEnumerable is a sequence sorted by one or more keys. The sort is
// deferred until a cursor is first advanced and is redone for every new
// cursor, since the source may have changed in between.
//
// The first node of a chain is created by OrderBy (or a variant) and holds
// the unsorted source; every ThenBy adds a node that points back at the
// chain it extends and carries a lower-priority key.
type OrderedEnumerable[T any] struct {
	*Enumerable[T]

	source Sequence[T]           // set on the root node only
	parent *OrderedEnumerable[T] // nil on the root node
	level  orderLevel[T]
}

func newOrdered[T any](source Sequence[T], parent *OrderedEnumerable[T], level orderLevel[T]) *OrderedEnumerable[T] {
	o := &OrderedEnumerable[T]{
		source: source,
		parent: parent,
		level:  level,
	}
	o.Enumerable = FromSequence[T](SequenceFunc[T](o.newIterator))
	return o
}

// root walks parent links back to the node created by OrderBy
func (o *OrderedEnumerable[T]) root() *OrderedEnumerable[T] {
	node := o
	for node.parent != nil {
		node = node.parent
	}
	return node
}

// levels returns the chain's keys in priority order, primary key first
func (o *OrderedEnumerable[T]) levels() []orderLevel[T] {
	var levels []orderLevel[T]
	for node := o; node != nil; node = node.parent {
		levels = append(levels, node.level)
	}
	for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
		levels[i], levels[j] = levels[j], levels[i]
	}
	return levels
}

// comparer builds the composite comparator: the first level that does not
// tie decides.
func (o *OrderedEnumerable[T]) comparer() func(x, y T) int {
	levels := o.levels()
	return func(x, y T) int {
		for _, level := range levels {
			if result := level.direction * level.compare(x, y); result != 0 {
				return result
			}
		}
		return 0
	}
}

// resolve materializes the root source and sorts it by the whole chain up to o
func (o *OrderedEnumerable[T]) resolve() ([]T, error) {
	items, err := collect(o.root().source)
	if err != nil {
		return nil, err
	}
	return partitionSort(items, o.comparer()), nil
}

func (o *OrderedEnumerable[T]) newIterator() Iterator[T] {
	return &orderedIterator[T]{node: o, index: -1}
}

// orderedIterator sorts on its first MoveNext, then walks the sorted slice
type orderedIterator[T any] struct {
	node     *OrderedEnumerable[T]
	items    []T
	index    int
	resolved bool
	done     bool
	err      error
}

func (it *orderedIterator[T]) MoveNext() bool {
	if it.done {
		return false
	}
	if !it.resolved {
		it.resolved = true
		it.items, it.err = it.node.resolve()
		if it.err != nil {
			it.done = true
			return false
		}
	}
	it.index++
	if it.index >= len(it.items) {
		it.done = true
		return false
	}
	return true
}

func (it *orderedIterator[T]) Current() T {
	if it.done || it.index < 0 {
		panic(invalidState(it.index))
	}
	return it.items[it.index]
}

func (it *orderedIterator[T]) Index() int {
	return it.index
}

func (it *orderedIterator[T]) Err() error {
	return it.err
}

// keyComparer lifts a key comparison to a comparison of elements
func keyComparer[T, K any](key func(T) K, compare Comparer[K]) func(x, y T) int {
	if key == nil {
		key = func(v T) K { return any(v).(K) }
	}
	return func(x, y T) int {
		return compare(key(x), key(y))
	}
}

// OrderBy sorts the elements of source in ascending order of key. A nil key
// orders the elements themselves (T must then be assignable to K).
func OrderBy[T any, K cmp.Ordered](source Sequence[T], key func(T) K) *OrderedEnumerable[T] {
	return newOrdered(source, nil, orderLevel[T]{keyComparer(key, Compare[K]), ascending})
}

// OrderByDescending sorts the elements of source in descending order of key
func OrderByDescending[T any, K cmp.Ordered](source Sequence[T], key func(T) K) *OrderedEnumerable[T] {
	return newOrdered(source, nil, orderLevel[T]{keyComparer(key, Compare[K]), descending})
}

// OrderByFunc sorts the elements of source in ascending order of key using
// compare, which must not be nil.
func OrderByFunc[T, K any](source Sequence[T], key func(T) K, compare Comparer[K]) *OrderedEnumerable[T] {
	return newOrdered(source, nil, orderLevel[T]{keyComparer(key, compare), ascending})
}

// OrderByFuncDescending sorts the elements of source in descending order of key using compare
func OrderByFuncDescending[T, K any](source Sequence[T], key func(T) K, compare Comparer[K]) *OrderedEnumerable[T] {
	return newOrdered(source, nil, orderLevel[T]{keyComparer(key, compare), descending})
}

// ThenBy adds an ascending key that only breaks ties left by the keys already in o
func ThenBy[T any, K cmp.Ordered](o *OrderedEnumerable[T], key func(T) K) *OrderedEnumerable[T] {
	return newOrdered(nil, o, orderLevel[T]{keyComparer(key, Compare[K]), ascending})
}

// ThenByDescending adds a descending tie-breaking key
func ThenByDescending[T any, K cmp.Ordered](o *OrderedEnumerable[T], key func(T) K) *OrderedEnumerable[T] {
	return newOrdered(nil, o, orderLevel[T]{keyComparer(key, Compare[K]), descending})
}

// ThenByFunc adds an ascending tie-breaking key compared with compare
func ThenByFunc[T, K any](o *OrderedEnumerable[T], key func(T) K, compare Comparer[K]) *OrderedEnumerable[T] {
	return newOrdered(nil, o, orderLevel[T]{keyComparer(key, compare), ascending})
}

// ThenByFuncDescending adds a descending tie-breaking key compared with compare
func ThenByFuncDescending[T, K any](o *OrderedEnumerable[T], key func(T) K, compare Comparer[K]) *OrderedEnumerable[T] {
	return newOrdered(nil, o, orderLevel[T]{keyComparer(key, compare), descending})
}
