// Package session keeps server side state shared by the http layer: the set of revoked
// access token ids and the login limiter counters.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

const revokedPrefix = "revoked:"

// ErrNilStorage is returned when Init is called without a backend.
var ErrNilStorage = errors.New("storage is nil")

// Store records revoked token ids in a fiber.Storage backend.
type Store struct {
	Storage fiber.Storage
}

// Init creates a Store backed by storage.
func Init(storage fiber.Storage) (*Store, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}

	return &Store{Storage: storage}, nil
}

// Revoke marks tokenID revoked for ttl.
func (s *Store) Revoke(tokenID string, ttl time.Duration) error {
	return s.Storage.Set(revokedPrefix+tokenID, []byte{1}, ttl)
}

// IsRevoked reports whether tokenID was revoked and has not yet expired.
func (s *Store) IsRevoked(tokenID string) (bool, error) {
	val, err := s.Storage.Get(revokedPrefix + tokenID)
	if err != nil {
		return false, err
	}

	return len(val) > 0, nil
}
