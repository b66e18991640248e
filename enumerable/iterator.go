// Package enumerable provides lazy, composable sequences over in-memory
// collections.
//
// Every sequence hands out independent cursors through the Iterator
// protocol. Operators such as Where, Select and OrderBy wrap an upstream
// sequence without evaluating it; work only happens when a terminal
// operation (ToArray, Count, First, ForEach, ...) drives a cursor.
package enumerable

import "fmt"

// Iterator is the cursor protocol every sequence implements.
//
// Note: this is a pull cursor rather than Go 1.23's iter.Seq because
// operators need the position of the current element and a way to report
// a fatal error (concurrent modification) that is not a panic.
type Iterator[T any] interface {
	// MoveNext advances the cursor and reports whether an element is available.
	// Once it returns false it keeps returning false for this cursor.
	MoveNext() bool
	// Current returns the element under the cursor. It panics with an
	// INVALID_STATE *Error when no element is available.
	Current() T
	// Index returns the 0-based position of the current element within this
	// sequence's output, or -1 before the first MoveNext.
	Index() int
	// Err returns the error that stopped the iteration, if any.
	Err() error
}

// Sequence produces a fresh Iterator for every consumption
type Sequence[T any] interface {
	Iterator() Iterator[T]
}

// Indexed is a finite, densely indexed collection that can be wrapped into a sequence
type Indexed[T any] interface {
	Len() int
	At(i int) T
}

// SequenceFunc adapts a factory function to the Sequence interface
type SequenceFunc[T any] func() Iterator[T]

// Iterator calls f
func (f SequenceFunc[T]) Iterator() Iterator[T] {
	return f()
}

func invalidState(index int) *Error {
	return withDetails(ErrInvalidState, fmt.Sprintf("cursor at index %d", index))
}
