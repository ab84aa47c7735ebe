package services

import "sync"

type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until key is free and returns its unlock func.
func (keyed *keyedMutex) Lock(key string) func() {
	keyed.mu.Lock()
	lock, ok := keyed.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		keyed.locks[key] = lock
	}
	keyed.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
