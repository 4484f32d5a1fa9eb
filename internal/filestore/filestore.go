// Package filestore keeps note attachments in object storage.
package filestore

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrObjectNotFound is returned for a key that is not stored.
var ErrObjectNotFound = errors.New("object not found")

// Store is an object store.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ObjectKey returns a new unique key for an attachment of userID. The extension of
// fileName is kept so downloads get a sensible name.
func ObjectKey(basePath string, userID uint64, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(fileName)))

	return path.Join(basePath, "notes", strconv.FormatUint(userID, 10), uuid.NewString()+ext)
}

// Memory is an in-process Store used when object storage is disabled and in tests.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores the content of r under key.
func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read object")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = data

	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)

	return nil
}

// PresignedURL returns a pseudo URL for a stored key.
func (m *Memory) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return "", ErrObjectNotFound
	}

	return "memory://" + key, nil
}

// Get returns the stored content of key.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.objects[key]

	return data, ok
}
