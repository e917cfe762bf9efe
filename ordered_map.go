package vtable

// OrderedMap is an insertion-ordered key/value collection.
// Setting an existing key moves it to the end, so the most recently set
// entry always has the lowest precedence. The zero value is ready to use.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty map with room for n entries.
func NewOrderedMap[K comparable, V any](n int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Set stores value under key and moves key to the end of the order.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; ok {
		m.removeKey(key)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
}

// Put stores value under key, keeping the key's current position if present.
func (m *OrderedMap[K, V]) Put(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Delete removes key. Returns false if it was not present.
func (m *OrderedMap[K, V]) Delete(key K) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	m.removeKey(key)
	return true
}

// Keys returns the keys in insertion order.
// The returned slice must not be modified.
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in order until fn returns false.
func (m *OrderedMap[K, V]) Each(fn func(K, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func (m *OrderedMap[K, V]) removeKey(key K) {
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}
