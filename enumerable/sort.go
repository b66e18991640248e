package enumerable

// partitionSort sorts items with a recursive partitioning scheme: the first
// element is the pivot, the rest split into "<= pivot" and "> pivot" (each
// side keeping its input order), each side is sorted recursively and the
// result is smaller + pivot + larger. The sort is not stable. items is not
// modified.
//
// Partitions are ranges of one working slice, laid out through a single
// scratch buffer, so memory stays linear on sorted or all-equal input.
func partitionSort[T any](items []T, compare func(x, y T) int) []T {
	if len(items) < 2 {
		return items
	}

	work := make([]T, len(items))
	copy(work, items)
	scratch := make([]T, len(items))
	sortRange(work, scratch, 0, len(work), compare)
	return work
}

// sortRange sorts work[lo:hi]. It recurses into the shorter partition and
// loops on the longer one, which bounds the stack depth to O(log n).
func sortRange[T any](work, scratch []T, lo, hi int, compare func(x, y T) int) {
	for hi-lo >= 2 {
		pivot := work[lo]

		// Smaller elements fill scratch from the front and larger ones from
		// the back, then the back run is reversed to restore input order.
		front, back := lo, hi
		for _, item := range work[lo+1 : hi] {
			if compare(item, pivot) <= 0 {
				scratch[front] = item
				front++
			} else {
				back--
				scratch[back] = item
			}
		}
		for i, j := back, hi-1; i < j; i, j = i+1, j-1 {
			scratch[i], scratch[j] = scratch[j], scratch[i]
		}

		mid := front
		copy(work[lo:mid], scratch[lo:mid])
		work[mid] = pivot
		copy(work[mid+1:hi], scratch[back:hi])

		if mid-lo < hi-mid-1 {
			sortRange(work, scratch, lo, mid, compare)
			lo = mid + 1
		} else {
			sortRange(work, scratch, mid+1, hi, compare)
			hi = mid
		}
	}
}
