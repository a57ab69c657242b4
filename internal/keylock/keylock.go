package keylock

import "sync"

// Registry hands out one mutex per key so that read-modify-write sequences
// on the same entity serialize while distinct entities proceed in parallel.
type Registry struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func New() *Registry {
	return &Registry{locks: make(map[uint]*sync.Mutex)}
}

func (r *Registry) get(key uint) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	return m
}

// Lock acquires the exclusive lock for key and returns the matching unlock.
// The lock must be held for the whole span of the atomic unit it protects.
func (r *Registry) Lock(key uint) (unlock func()) {
	m := r.get(key)
	m.Lock()
	return m.Unlock
}
