package namematch

import "sync"

// memo is a bounded string-to-string map with FIFO eviction: when an insert
// would grow past capacity, the oldest-inserted key is dropped. It is a pure
// performance cache; clearing it never changes observable behavior.
type memo struct {
	mu       sync.Mutex
	values   map[string]string
	queue    []string
	capacity int
}

func newMemo(capacity int) *memo {
	if capacity < 1 {
		capacity = 1
	}
	return &memo{
		values:   make(map[string]string, capacity),
		capacity: capacity,
	}
}

func (m *memo) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	return value, ok
}

func (m *memo) put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.values[key]; exists {
		// Re-insert keeps the original queue position. FIFO only cares
		// about first insertion.
		m.values[key] = value
		return
	}

	if len(m.values) >= m.capacity {
		oldest := m.queue[0]
		m.queue = m.queue[1:]
		delete(m.values, oldest)
	}

	m.values[key] = value
	m.queue = append(m.queue, key)
}

func (m *memo) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

func (m *memo) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string, m.capacity)
	m.queue = nil
}
