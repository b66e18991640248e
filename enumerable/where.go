package enumerable

// whereSequence yields the upstream elements accepted by predicate
type whereSequence[T any] struct {
	source    Sequence[T]
	predicate func(T, int) bool
}

func newWhereSequence[T any](source Sequence[T], predicate func(T, int) bool) *whereSequence[T] {
	if predicate == nil {
		predicate = func(T, int) bool { return true }
	}
	return &whereSequence[T]{source: source, predicate: predicate}
}

func (s *whereSequence[T]) Iterator() Iterator[T] {
	return &whereIterator[T]{
		upstream:  s.source.Iterator(),
		predicate: s.predicate,
		index:     -1,
	}
}

// whereIterator keeps its own contiguous index; the predicate sees the upstream one
type whereIterator[T any] struct {
	upstream  Iterator[T]
	predicate func(T, int) bool
	index     int
	done      bool
}

func (it *whereIterator[T]) MoveNext() bool {
	if it.done {
		return false
	}
	for it.upstream.MoveNext() {
		if it.predicate(it.upstream.Current(), it.upstream.Index()) {
			it.index++
			return true
		}
	}
	it.done = true
	return false
}

func (it *whereIterator[T]) Current() T {
	if it.done || it.index < 0 {
		panic(invalidState(it.index))
	}
	return it.upstream.Current()
}

func (it *whereIterator[T]) Index() int {
	return it.index
}

func (it *whereIterator[T]) Err() error {
	return it.upstream.Err()
}
