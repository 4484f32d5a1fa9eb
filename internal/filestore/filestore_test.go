package filestore

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("lms", 7, "Lecture Notes.PDF")

	assert.True(t, strings.HasPrefix(key, "lms/notes/7/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
	assert.NotEqual(t, key, ObjectKey("lms", 7, "Lecture Notes.PDF"))
}

func TestObjectKeyIgnoresDirectories(t *testing.T) {
	key := ObjectKey("", 1, "../../etc/passwd")

	assert.True(t, strings.HasPrefix(key, "notes/1/"), key)
	assert.NotContains(t, key, "..")
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "a/b.txt", strings.NewReader("hello"), 5, "text/plain"))

	data, ok := m.Get("a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	u, err := m.PresignedURL(ctx, "a/b.txt", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "memory://a/b.txt", u)

	require.NoError(t, m.Delete(ctx, "a/b.txt"))
	_, err = m.PresignedURL(ctx, "a/b.txt", time.Minute)
	require.ErrorIs(t, err, ErrObjectNotFound)
}
