package syncx

import "sync"

// Map is a typed wrapper around sync.Map.
type Map[K comparable, V any] struct {
	m sync.Map
}

func (m *Map[K, V]) Load(key K) (V, bool) {
	raw, ok := m.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}

	return raw.(V), true
}

func (m *Map[K, V]) LoadOrStore(key K, value V) (V, bool) {
	raw, loaded := m.m.LoadOrStore(key, value)
	return raw.(V), loaded
}

func (m *Map[K, V]) Store(key K, value V) {
	m.m.Store(key, value)
}

func (m *Map[K, V]) Delete(key K) {
	m.m.Delete(key)
}

func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.m.Range(func(key, value any) bool {
		return fn(key.(K), value.(V))
	})
}
