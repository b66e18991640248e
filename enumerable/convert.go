package enumerable

// ToDictionary builds a Dictionary from source, keyed by key and holding
// value(element). A nil value selector stores the element itself. It fails
// with DUPLICATE_KEY when two elements share a key.
func ToDictionary[T any, K comparable, V any](source Sequence[T], key func(T) K, value func(T) V) (*Dictionary[K, V], error) {
	if value == nil {
		value = func(v T) V { return any(v).(V) }
	}
	d := NewDictionary[K, V]()
	var addErr error
	err := FromSequence(source).ForEach(func(v T, _ int) bool {
		addErr = d.Add(key(v), value(v))
		return addErr == nil
	})
	if err != nil {
		return nil, err
	}
	if addErr != nil {
		return nil, addErr
	}
	return d, nil
}

// ToSlice is a convenience for FromSequence(source).ToArray()
func ToSlice[T any](source Sequence[T]) ([]T, error) {
	return collect(source)
}
