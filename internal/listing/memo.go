package listing

import (
	"slices"
	"sync"
)

// Memo caches one filtered result per (collection version, criteria key).
// Bumping the version on every snapshot replacement is enough to invalidate it.
type Memo[T any] struct {
	mu      sync.Mutex
	version uint64
	key     string
	valid   bool
	out     []T
}

// Get returns the result for (version, c), calling compute on a miss. Each
// call gets its own copy of the slice.
func (m *Memo[T]) Get(version uint64, c Criteria, compute func() []T) []T {
	key := c.Key()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.version == version && m.key == key {
		return slices.Clone(m.out)
	}
	m.out = compute()
	m.version = version
	m.key = key
	m.valid = true
	return slices.Clone(m.out)
}

// Reset drops the cached result.
func (m *Memo[T]) Reset() {
	m.mu.Lock()
	m.valid = false
	m.out = nil
	m.mu.Unlock()
}
