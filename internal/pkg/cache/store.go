package cache

import "time"

// Store adapts the package-level cache functions to an injectable value for
// services that take a cache dependency.
type Store struct{}

// NewStore returns a Store backed by the shared Redis client.
func NewStore() Store {
	return Store{}
}

func (Store) Get(key string) (string, error) {
	return Get(key)
}

func (Store) Set(key string, value interface{}, expiration time.Duration) error {
	return Set(key, value, expiration)
}

func (Store) Delete(key string) error {
	return Delete(key)
}
