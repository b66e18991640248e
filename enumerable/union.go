package enumerable

// unionSequence yields first then second, dropping elements equal to one
// already yielded by the same cursor.
type unionSequence[T any] struct {
	first  Sequence[T]
	second Sequence[T]
	eq     EqualityComparer[T]
}

func (s *unionSequence[T]) Iterator() Iterator[T] {
	return &unionIterator[T]{
		sources: []Sequence[T]{s.first, s.second},
		eq:      s.eq,
		index:   -1,
	}
}

type unionIterator[T any] struct {
	sources []Sequence[T]
	current Iterator[T]
	eq      EqualityComparer[T]
	seen    []T
	index   int
	done    bool
	err     error
}

func (it *unionIterator[T]) MoveNext() bool {
	if it.done {
		return false
	}
	for {
		if it.current == nil {
			if len(it.sources) == 0 {
				it.done = true
				return false
			}
			it.current = it.sources[0].Iterator()
			it.sources = it.sources[1:]
		}
		for it.current.MoveNext() {
			v := it.current.Current()
			if it.yielded(v) {
				continue
			}
			it.seen = append(it.seen, v)
			it.index++
			return true
		}
		if err := it.current.Err(); err != nil {
			it.err = err
			it.done = true
			return false
		}
		it.current = nil
	}
}

func (it *unionIterator[T]) yielded(v T) bool {
	for _, s := range it.seen {
		if it.eq(s, v) {
			return true
		}
	}
	return false
}

func (it *unionIterator[T]) Current() T {
	if it.done || it.index < 0 {
		panic(invalidState(it.index))
	}
	return it.seen[it.index]
}

func (it *unionIterator[T]) Index() int {
	return it.index
}

func (it *unionIterator[T]) Err() error {
	return it.err
}
