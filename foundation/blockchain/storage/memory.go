package storage

import "sync"

// MemoryKV is a map-backed KV for tests and short-lived processes that
// never need the data to outlive the run.
type MemoryKV struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemory constructs an empty MemoryKV.
func NewMemory() *MemoryKV {
	return &MemoryKV{buckets: make(map[string]map[string][]byte)}
}

// Put writes value under key in bucket, creating bucket if needed.
func (m *MemoryKV) Put(bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, ok := m.buckets[bucket]
	if !ok {
		bkt = make(map[string][]byte)
		m.buckets[bucket] = bkt
	}
	bkt[key] = append([]byte(nil), value...)
	return nil
}

// Get reads the value stored under key in bucket, or ErrNotFound.
func (m *MemoryKV) Get(bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, ok := m.buckets[bucket]
	if !ok {
		return nil, ErrNotFound
	}
	v, ok := bkt[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Delete removes key from bucket. A missing bucket or key is not an error.
func (m *MemoryKV) Delete(bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if bkt, ok := m.buckets[bucket]; ok {
		delete(bkt, key)
	}
	return nil
}

// ForEach walks every key/value pair in bucket in unspecified order.
func (m *MemoryKV) ForEach(bucket string, fn func(key, value []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for k, v := range m.buckets[bucket] {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op; MemoryKV holds no external resource.
func (m *MemoryKV) Close() error {
	return nil
}

var _ KV = (*MemoryKV)(nil)
