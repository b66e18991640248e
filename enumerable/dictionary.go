package enumerable

import "fmt"

// KeyValuePair is the element type of a Dictionary sequence
type KeyValuePair[K comparable, V any] struct {
	Key   K
	Value V
}

// Dictionary maps unique keys to values. Iterating it yields KeyValuePair
// values in insertion order; cursors fail with CONCURRENT_MODIFICATION when
// the element count changes while they are active.
type Dictionary[K comparable, V any] struct {
	*Enumerable[KeyValuePair[K, V]]

	values map[K]V
	keys   []K
}

// NewDictionary creates an empty dictionary
func NewDictionary[K comparable, V any]() *Dictionary[K, V] {
	d := &Dictionary[K, V]{
		values: make(map[K]V),
	}
	d.Enumerable = FromSequence[KeyValuePair[K, V]](SequenceFunc[KeyValuePair[K, V]](d.newIterator))
	return d
}

// Len returns the number of entries
func (d *Dictionary[K, V]) Len() int {
	return len(d.keys)
}

// HasKey reports whether key is present
func (d *Dictionary[K, V]) HasKey(key K) bool {
	_, ok := d.values[key]
	return ok
}

// Add inserts a new entry, failing with DUPLICATE_KEY when key is present
func (d *Dictionary[K, V]) Add(key K, value V) error {
	if d.HasKey(key) {
		return withDetails(ErrDuplicateKey, fmt.Sprintf("key %v", key))
	}
	d.values[key] = value
	d.keys = append(d.keys, key)
	return nil
}

// Get looks up the value stored under key
func (d *Dictionary[K, V]) Get(key K) (V, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Remove deletes key and reports whether it was present
func (d *Dictionary[K, V]) Remove(key K) bool {
	if !d.HasKey(key) {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the key set as a new list
func (d *Dictionary[K, V]) Keys() *List[K] {
	return NewList(d.keys...)
}

// Values returns the values, in key order, as a new list
func (d *Dictionary[K, V]) Values() *List[V] {
	values := make([]V, len(d.keys))
	for i, k := range d.keys {
		values[i] = d.values[k]
	}
	return NewList(values...)
}

// Count returns Len without iterating when no predicate is given
func (d *Dictionary[K, V]) Count(predicate ...func(KeyValuePair[K, V]) bool) (int, error) {
	if len(predicate) == 0 || predicate[0] == nil {
		return d.Len(), nil
	}
	return d.Enumerable.Count(predicate...)
}

func (d *Dictionary[K, V]) newIterator() Iterator[KeyValuePair[K, V]] {
	return &dictionaryIterator[K, V]{
		dict:   d,
		keys:   d.Keys(),
		length: d.Len(),
		index:  -1,
	}
}

// dictionaryIterator walks a snapshot of the key list and compares the
// dictionary's element count on every advance.
type dictionaryIterator[K comparable, V any] struct {
	dict   *Dictionary[K, V]
	keys   *List[K]
	length int
	index  int
	done   bool
	err    error
}

func (it *dictionaryIterator[K, V]) MoveNext() bool {
	if it.done {
		return false
	}
	if n := it.dict.Len(); n != it.length {
		it.err = withDetails(ErrConcurrentModification, fmt.Sprintf("count changed from %d to %d", it.length, n))
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

func (it *dictionaryIterator[K, V]) Current() KeyValuePair[K, V] {
	if it.done || it.index < 0 {
		panic(invalidState(it.index))
	}
	key := it.keys.At(it.index)
	return KeyValuePair[K, V]{Key: key, Value: it.dict.values[key]}
}

func (it *dictionaryIterator[K, V]) Index() int {
	return it.index
}

func (it *dictionaryIterator[K, V]) Err() error {
	return it.err
}
