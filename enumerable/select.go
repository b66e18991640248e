package enumerable

// selectSequence projects every upstream element through selector
type selectSequence[T, U any] struct {
	source   Sequence[T]
	selector func(T, int) U
}

func (s *selectSequence[T, U]) Iterator() Iterator[U] {
	return &selectIterator[T, U]{
		upstream: s.source.Iterator(),
		selector: s.selector,
	}
}

// selectIterator delegates positioning to upstream; indices are the upstream ones
type selectIterator[T, U any] struct {
	upstream Iterator[T]
	selector func(T, int) U
}

func (it *selectIterator[T, U]) MoveNext() bool {
	return it.upstream.MoveNext()
}

func (it *selectIterator[T, U]) Current() U {
	return it.selector(it.upstream.Current(), it.upstream.Index())
}

func (it *selectIterator[T, U]) Index() int {
	return it.upstream.Index()
}

func (it *selectIterator[T, U]) Err() error {
	return it.upstream.Err()
}

// Select lazily projects each element of source into a new form. The
// selector receives the element and its position in source. A nil selector
// converts each element with a type assertion to U, which panics unless T
// values are assignable to U.
func Select[T, U any](source Sequence[T], selector func(T, int) U) *Enumerable[U] {
	if selector == nil {
		selector = func(v T, _ int) U { return any(v).(U) }
	}
	return FromSequence[U](&selectSequence[T, U]{source: source, selector: selector})
}

// Map is an alias of Select
func Map[T, U any](source Sequence[T], selector func(T, int) U) *Enumerable[U] {
	return Select(source, selector)
}
