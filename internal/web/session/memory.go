package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// Memory is an in-process fiber.Storage, used with sqlite and in tests.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an empty in-process storage.
func NewMemory() *Memory {
	return &Memory{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Get returns the value of key or nil when it is missing or expired.
func (m *Memory) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	v, ok := m.cache.Get(key)
	if !ok {
		return nil, nil
	}

	b, _ := v.([]byte)

	return b, nil
}

// Set stores val under key. A zero exp keeps it until deleted.
func (m *Memory) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	if exp <= 0 {
		exp = gocache.NoExpiration
	}

	m.cache.Set(key, val, exp)

	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	m.cache.Delete(key)
	return nil
}

// Reset removes every key.
func (m *Memory) Reset() error {
	m.cache.Flush()
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
