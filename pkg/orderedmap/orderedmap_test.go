package orderedmap_test

import (
	"testing"

	"github.com/arthur-debert/filemap/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[V comparable](m *orderedmap.Map[string, V]) []string {
	var out []string
	for _, p := range m.Pairs() {
		out = append(out, p.Key)
	}
	return out
}

func TestSet(t *testing.T) {
	t.Run("new_keys_append", func(t *testing.T) {
		m := orderedmap.New[string, string]()
		assert.True(t, m.Set("b", "1"))
		assert.True(t, m.Set("a", "2"))
		assert.True(t, m.Set("c", "3"))

		assert.Equal(t, []orderedmap.Pair[string, string]{
			{Key: "b", Value: "1"},
			{Key: "a", Value: "2"},
			{Key: "c", Value: "3"},
		}, m.Pairs())
		assert.Equal(t, 3, m.Len())
	})

	t.Run("identical_value_keeps_position", func(t *testing.T) {
		m := orderedmap.New[string, string]()
		m.Set("k", "A")
		m.Set("x", "X")

		assert.False(t, m.Set("k", "A"))
		assert.Equal(t, []string{"k", "x"}, keys(m))
	})

	t.Run("different_value_moves_to_end", func(t *testing.T) {
		m := orderedmap.New[string, string]()
		m.Set("k", "A")
		m.Set("x", "X")
		m.Set("y", "Y")

		assert.True(t, m.Set("k", "B"))
		assert.Equal(t, []string{"x", "y", "k"}, keys(m))

		v, ok := m.Get("k")
		require.True(t, ok)
		assert.Equal(t, "B", v)
	})
}

func TestGet(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("one", 1)
	m.Set("two", 2)

	v, ok := m.Get("two")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("three")
	assert.False(t, ok)
}

func TestPairsIsACopy(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)

	pairs := m.Pairs()
	pairs[0].Value = 99

	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
	assert.Empty(t, orderedmap.New[string, int]().Pairs())
}

func TestRangeStopsEarly(t *testing.T) {
	m := orderedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
