package enumerable

import "fmt"

// slice adapts a Go slice to Indexed. A slice header cannot change length
// behind the adapter, so only List-backed sources trip modification checks.
type slice[T any] []T

func (s slice[T]) Len() int {
	return len(s)
}

func (s slice[T]) At(i int) T {
	return s[i]
}

// indexedSequence hands out arrayIterators over an Indexed collection
type indexedSequence[T any] struct {
	source Indexed[T]
}

func (s indexedSequence[T]) Iterator() Iterator[T] {
	return newArrayIterator(s.source)
}

// arrayIterator walks an Indexed collection and fails fast when its length
// changes between construction and any MoveNext.
type arrayIterator[T any] struct {
	source Indexed[T]
	length int
	index  int
	done   bool
	err    error
}

func newArrayIterator[T any](source Indexed[T]) *arrayIterator[T] {
	return &arrayIterator[T]{
		source: source,
		length: source.Len(),
		index:  -1,
	}
}

func (it *arrayIterator[T]) MoveNext() bool {
	if it.done {
		return false
	}
	if n := it.source.Len(); n != it.length {
		it.err = withDetails(ErrConcurrentModification, fmt.Sprintf("length changed from %d to %d", it.length, n))
		it.done = true
		return false
	}
	it.index++
	if it.index >= it.length {
		it.done = true
		return false
	}
	return true
}

func (it *arrayIterator[T]) Current() T {
	if it.done || it.index < 0 {
		panic(invalidState(it.index))
	}
	return it.source.At(it.index)
}

func (it *arrayIterator[T]) Index() int {
	return it.index
}

func (it *arrayIterator[T]) Err() error {
	return it.err
}
