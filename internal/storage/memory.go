package storage

import "sync"

type MemoryKV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string][]byte)}
}

func (store *MemoryKV) Get(key string) ([]byte, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (store *MemoryKV) Set(key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[key] = append([]byte(nil), value...)
	return nil
}

func (store *MemoryKV) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, key)
	return nil
}

func (store *MemoryKV) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}
