package enumerable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test plan:
// 1. Test Add / Get / HasKey / Remove and the DUPLICATE_KEY error
// 2. Test iteration yields key/value pairs in insertion order
// 3. Test Keys / Values are independent lists
// 4. Test modification detection on the dictionary cursor
// 5. Test ToDictionary conversion including duplicate keys

func TestDictionary_AddGet(t *testing.T) {
	d := NewDictionary[string, int]()
	require.NoError(t, d.Add("one", 1))
	require.NoError(t, d.Add("two", 2))

	v, ok := d.Get("two")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = d.Get("three")
	assert.False(t, ok)

	assert.True(t, d.HasKey("one"))
	assert.Equal(t, 2, d.Len())

	err := d.Add("one", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "key one")

	v, _ = d.Get("one")
	assert.Equal(t, 1, v, "failed add must not overwrite")
}

func TestDictionary_Remove(t *testing.T) {
	d := NewDictionary[int, string]()
	require.NoError(t, d.Add(1, "a"))
	require.NoError(t, d.Add(2, "b"))
	require.NoError(t, d.Add(3, "c"))

	assert.True(t, d.Remove(2))
	assert.False(t, d.Remove(2))
	assert.False(t, d.HasKey(2))

	keys, err := d.Keys().ToArray()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, keys)
}

func TestDictionary_Iteration(t *testing.T) {
	d := NewDictionary[string, int]()
	require.NoError(t, d.Add("b", 2))
	require.NoError(t, d.Add("a", 1))

	pairs, err := d.ToArray()
	require.NoError(t, err)
	assert.Equal(t, []KeyValuePair[string, int]{{"b", 2}, {"a", 1}}, pairs)

	n, err := d.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = d.Count(func(kv KeyValuePair[string, int]) bool { return kv.Value > 1 })
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Test: the facade composes over pairs
	sorted, err := Select(OrderBy(d, func(kv KeyValuePair[string, int]) string { return kv.Key }),
		func(kv KeyValuePair[string, int], _ int) string { return kv.Key }).ToArray()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sorted)
}

func TestDictionary_KeysAndValues(t *testing.T) {
	d := NewDictionary[string, int]()
	require.NoError(t, d.Add("x", 10))
	require.NoError(t, d.Add("y", 20))

	keys := d.Keys()
	values := d.Values()
	require.NoError(t, d.Add("z", 30))

	assert.Equal(t, 2, keys.Len())
	assert.Equal(t, 20, values.At(1))

	ok, err := d.Keys().Contains("z", nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDictionary_ConcurrentModification(t *testing.T) {
	d := NewDictionary[int, int]()
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Add(i, i*i))
	}

	err := d.ForEach(func(kv KeyValuePair[int, int], _ int) bool {
		_ = d.Add(kv.Key+100, 0)
		return true
	})
	assert.ErrorIs(t, err, ErrConcurrentModification)
	assert.Equal(t, 4, d.Len())
}

func TestDictionary_ValueLookupIsLive(t *testing.T) {
	// Test: pairs read the current value, only the count is guarded
	d := NewDictionary[string, int]()
	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))

	it := d.Iterator()
	require.True(t, it.MoveNext())
	d.values["b"] = 20
	require.True(t, it.MoveNext())
	assert.Equal(t, KeyValuePair[string, int]{"b", 20}, it.Current())
	assert.Equal(t, 1, it.Index())
}

func TestToDictionary(t *testing.T) {
	d, err := ToDictionary(From(people[:2]), func(p person) string { return p.Last }, func(p person) string { return p.First })
	require.NoError(t, err)
	v, ok := d.Get("Murray")
	assert.True(t, ok)
	assert.Equal(t, "Bill", v)

	_, err = ToDictionary(From(people), func(p person) string { return p.First }, func(p person) person { return p })
	assert.ErrorIs(t, err, ErrDuplicateKey)

	byLen, err := ToDictionary[string, int, string](Of("a", "bb"), func(s string) int { return len(s) }, nil)
	require.NoError(t, err)
	v, _ = byLen.Get(2)
	assert.Equal(t, "bb", v)
}
