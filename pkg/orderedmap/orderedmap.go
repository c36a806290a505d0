// Package orderedmap provides an insertion-ordered map whose update policy
// matches the destination mapping of a file manifest: writing an identical
// value is a no-op, while writing a different value moves the key to the end.
package orderedmap

import "container/list"

// Pair is one key/value entry in iteration order
type Pair[K comparable, V comparable] struct {
	Key   K
	Value V
}

// Map is an ordered map with unique keys. The zero value is not usable;
// create maps with New.
type Map[K comparable, V comparable] struct {
	order *list.List
	index map[K]*list.Element
}

// New creates an empty map
func New[K comparable, V comparable]() *Map[K, V] {
	return &Map[K, V]{
		order: list.New(),
		index: make(map[K]*list.Element),
	}
}

// Set stores value under key and reports whether the map changed.
//
// A new key is appended. An existing key holding an equal value is left in
// place. An existing key holding a different value takes the new value and
// moves to the end of the iteration order.
func (m *Map[K, V]) Set(key K, value V) bool {
	if el, ok := m.index[key]; ok {
		p := el.Value.(*Pair[K, V])
		if p.Value == value {
			return false
		}
		p.Value = value
		m.order.MoveToBack(el)
		return true
	}
	m.index[key] = m.order.PushBack(&Pair[K, V]{Key: key, Value: value})
	return true
}

// Get returns the value stored under key
func (m *Map[K, V]) Get(key K) (V, bool) {
	if el, ok := m.index[key]; ok {
		return el.Value.(*Pair[K, V]).Value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	return len(m.index)
}

// Pairs returns a copy of the entries in iteration order
func (m *Map[K, V]) Pairs() []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, m.Len())
	m.Range(func(k K, v V) bool {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
		return true
	})
	return pairs
}

// Range calls fn for each entry in order until fn returns false.
// fn must not modify the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for el := m.order.Front(); el != nil; el = el.Next() {
		p := el.Value.(*Pair[K, V])
		if !fn(p.Key, p.Value) {
			return
		}
	}
}
