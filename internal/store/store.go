// Package store provides containers used by the pipeline stages.
package store

// Ordered is a map remembering the order in which keys were first inserted.
// The zero value is not usable, use NewOrdered.
type Ordered[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

// NewOrdered creates an empty ordered map.
func NewOrdered[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		index: make(map[K]int),
	}
}

// Get returns the value stored for k.
func (s *Ordered[K, V]) Get(k K) (V, bool) {
	idx, ok := s.index[k]
	if !ok {
		var zero V

		return zero, false
	}

	return s.values[idx], true
}

// Set stores v for k. A new key goes last, an existing key keeps its position.
func (s *Ordered[K, V]) Set(k K, v V) {
	if idx, ok := s.index[k]; ok {
		s.values[idx] = v

		return
	}
	s.index[k] = len(s.keys)
	s.keys = append(s.keys, k)
	s.values = append(s.values, v)
}

// Len returns the number of keys.
func (s *Ordered[K, V]) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *Ordered[K, V]) Keys() []K {
	keys := make([]K, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (s *Ordered[K, V]) Range(fn func(K, V) bool) {
	for i, k := range s.keys {
		if !fn(k, s.values[i]) {
			return
		}
	}
}

// Clone returns a copy sharing no storage with s. Values go through copyValue,
// or are copied shallowly when it is nil.
func (s *Ordered[K, V]) Clone(copyValue func(V) V) *Ordered[K, V] {
	cp := &Ordered[K, V]{
		index:  make(map[K]int, len(s.index)),
		keys:   make([]K, len(s.keys)),
		values: make([]V, len(s.values)),
	}
	for k, idx := range s.index {
		cp.index[k] = idx
	}
	copy(cp.keys, s.keys)
	copy(cp.values, s.values)
	if copyValue != nil {
		for i, v := range cp.values {
			cp.values[i] = copyValue(v)
		}
	}

	return cp
}
