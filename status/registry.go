package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Registry is the central metrics facade shared by the loop (writer) and the status server (reader)
// Components cache metric pointers at construction; hot paths write atomics without locking
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// Snapshot copies every metric into plain maps for encoding
func (r *Registry) Snapshot() Snapshot {
	snap := Snapshot{
		Counters: make(map[string]int64),
		Gauges:   make(map[string]float64),
		Labels:   make(map[string]string),
	}
	r.Counters.Range(func(key string, v *atomic.Int64) {
		snap.Counters[key] = v.Load()
	})
	r.Gauges.Range(func(key string, v *AtomicFloat) {
		snap.Gauges[key] = v.Get()
	})
	r.Labels.Range(func(key string, v *AtomicString) {
		snap.Labels[key] = v.Load()
	})
	return snap
}

// Snapshot is a point-in-time copy of the registry
type Snapshot struct {
	Counters map[string]int64   `json:"counters"`
	Gauges   map[string]float64 `json:"gauges"`
	Labels   map[string]string  `json:"labels"`
}

// MetricMap is a thread-safe set of named metrics of type T
// Registration takes the mutex; reads through a cached pointer are lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric pointer for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Range visits metrics in sorted key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Len returns the number of registered metrics
func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
