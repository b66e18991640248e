package enumerable

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// List is a resizable indexed collection. It embeds the sequence facade, so
// every query operation is available on it directly; cursors over a List
// fail with CONCURRENT_MODIFICATION when elements are added or removed while
// they are active.
//
// Slots may be declared ahead of the current length with Set. Such a slot is
// not part of the list until the length reaches it, and Add refuses to
// overwrite it.
type List[T any] struct {
	*Enumerable[T]

	slots    []T
	declared *bitset.BitSet
	length   int
}

// NewList creates a list holding a copy of items
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{
		slots:    make([]T, len(items)),
		declared: bitset.New(uint(len(items))),
		length:   len(items),
	}
	copy(l.slots, items)
	for i := range items {
		l.declared.Set(uint(i))
	}
	l.Enumerable = FromIndexed[T](l)
	return l
}

// Len returns the number of elements in the list
func (l *List[T]) Len() int {
	return l.length
}

// At returns the element at index i, panicking when i is out of range
func (l *List[T]) At(i int) T {
	if i < 0 || i >= l.length {
		panic(fmt.Sprintf("list index %d out of range [0:%d]", i, l.length))
	}
	return l.slots[i]
}

// Set writes v to slot i. Writing inside the list replaces an element;
// writing at or past Len declares the slot without growing the list.
func (l *List[T]) Set(i int, v T) {
	if i < 0 {
		panic(fmt.Sprintf("list index %d out of range", i))
	}
	l.grow(i + 1)
	l.slots[i] = v
	l.declared.Set(uint(i))
}

// IsDeclared reports whether slot i holds a value, inside or past the list's length
func (l *List[T]) IsDeclared(i int) bool {
	return i >= 0 && l.declared.Test(uint(i))
}

// Add appends v. It fails with INDEX_CONFLICT when the slot at Len was
// already declared through Set.
func (l *List[T]) Add(v T) error {
	slot := l.length
	if l.declared.Test(uint(slot)) {
		return withDetails(ErrIndexConflict, fmt.Sprintf("index %d already declared", slot))
	}
	l.grow(slot + 1)
	l.slots[slot] = v
	l.declared.Set(uint(slot))
	l.length++
	return nil
}

// AddRange appends every value, stopping at the first conflict
func (l *List[T]) AddRange(values ...T) error {
	for _, v := range values {
		if err := l.Add(v); err != nil {
			return err
		}
	}
	return nil
}

// AddSequence appends every element of source
func (l *List[T]) AddSequence(source Sequence[T]) error {
	var addErr error
	err := FromSequence(source).ForEach(func(v T, _ int) bool {
		addErr = l.Add(v)
		return addErr == nil
	})
	if err != nil {
		return err
	}
	return addErr
}

// Push appends values and returns the new length
func (l *List[T]) Push(values ...T) (int, error) {
	err := l.AddRange(values...)
	return l.length, err
}

// Remove deletes the first element equal to elem (DefaultEqual when eq is
// nil) and reports whether one was found.
func (l *List[T]) Remove(elem T, eq EqualityComparer[T]) bool {
	eq = equalityOrDefault(eq)
	for i := 0; i < l.length; i++ {
		if !eq(l.slots[i], elem) {
			continue
		}
		copy(l.slots[i:l.length-1], l.slots[i+1:l.length])
		last := l.length - 1
		var zero T
		l.slots[last] = zero
		l.declared.Clear(uint(last))
		l.length--
		return true
	}
	return false
}

// Count returns Len without iterating when no predicate is given
func (l *List[T]) Count(predicate ...func(T) bool) (int, error) {
	if len(predicate) == 0 || predicate[0] == nil {
		return l.length, nil
	}
	return l.Enumerable.Count(predicate...)
}

// Length is an alias of Count
func (l *List[T]) Length(predicate ...func(T) bool) (int, error) {
	return l.Count(predicate...)
}

func (l *List[T]) grow(n int) {
	if n <= len(l.slots) {
		return
	}
	l.slots = append(l.slots, make([]T, n-len(l.slots))...)
}
