package enumerable

import (
	"cmp"
	"reflect"
)

// EqualityComparer reports whether two elements are equivalent
type EqualityComparer[T any] func(a, b T) bool

// Comparer orders two keys, returning a negative number, zero or a positive number
type Comparer[K any] func(a, b K) int

// Compare is the natural ordering of an ordered key
func Compare[K cmp.Ordered](a, b K) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// CompareNullable orders nil keys before any non-nil key and treats two nil
// keys as equal; non-nil keys use their natural ordering.
func CompareNullable[K cmp.Ordered](a, b *K) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return Compare(*a, *b)
	}
}

// DefaultEqual is the equality used when no comparer is supplied. Values of
// comparable dynamic types use ==; anything else (slices, maps, structs
// holding them) falls back to reflect.DeepEqual.
func DefaultEqual[T any](a, b T) bool {
	va, vb := any(a), any(b)
	if va == nil || vb == nil {
		return va == nil && vb == nil
	}
	ta, tb := reflect.TypeOf(va), reflect.TypeOf(vb)
	if ta != tb {
		return false
	}
	if isStrictlyComparable(ta) {
		return va == vb
	}
	return reflect.DeepEqual(va, vb)
}

// isStrictlyComparable reports whether == can never panic for values of t
func isStrictlyComparable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return false
	case reflect.Array:
		return isStrictlyComparable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isStrictlyComparable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return t.Comparable()
	}
}

func equalityOrDefault[T any](eq EqualityComparer[T]) EqualityComparer[T] {
	if eq == nil {
		return DefaultEqual[T]
	}
	return eq
}
