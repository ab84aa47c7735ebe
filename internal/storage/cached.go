package storage

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedKV serves reads from an in-process cache and writes through to the
// backing store. Values are copied on the way in and out.
type CachedKV struct {
	backend KV
	cache   *cache.Cache
}

func NewCachedKV(backend KV, ttl time.Duration, cleanupInterval time.Duration) *CachedKV {
	return &CachedKV{
		backend: backend,
		cache:   cache.New(ttl, cleanupInterval),
	}
}

func (store *CachedKV) Get(key string) ([]byte, bool, error) {
	if cached, ok := store.cache.Get(key); ok {
		return append([]byte(nil), cached.([]byte)...), true, nil
	}

	value, found, err := store.backend.Get(key)
	if err != nil || !found {
		return value, found, err
	}
	store.cache.SetDefault(key, append([]byte(nil), value...))
	return value, true, nil
}

func (store *CachedKV) Set(key string, value []byte) error {
	if err := store.backend.Set(key, value); err != nil {
		store.cache.Delete(key)
		return err
	}
	store.cache.SetDefault(key, append([]byte(nil), value...))
	return nil
}

func (store *CachedKV) Delete(key string) error {
	store.cache.Delete(key)
	return store.backend.Delete(key)
}
