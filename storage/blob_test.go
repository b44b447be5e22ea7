package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBlobStore runs the contract every backend has to satisfy.
func exerciseBlobStore(t *testing.T, s BlobStore) {
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "@nexusmatch_user")
	require.NoError(t, err)
	assert.False(t, ok, "missing key must report ok=false")

	require.NoError(t, s.Set(ctx, "@nexusmatch_user", `{"id":"u1"}`))
	require.NoError(t, s.Set(ctx, "@nexusmatch_matches", `[]`))
	require.NoError(t, s.Set(ctx, "other_app", `keep`))

	v, ok, err := s.Get(ctx, "@nexusmatch_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, v)

	// overwrite
	require.NoError(t, s.Set(ctx, "@nexusmatch_user", `{"id":"u2"}`))
	v, _, err = s.Get(ctx, "@nexusmatch_user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u2"}`, v)

	require.NoError(t, s.Clear(ctx, "@nexusmatch_"))

	_, ok, err = s.Get(ctx, "@nexusmatch_user")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Get(ctx, "@nexusmatch_matches")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = s.Get(ctx, "other_app")
	require.NoError(t, err)
	assert.True(t, ok, "clear must only touch the prefix")
	assert.Equal(t, "keep", v)
}

func TestMemoryBlobStore(t *testing.T) {
	exerciseBlobStore(t, NewMemory())
}

func TestMemoryKeys(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Set(context.Background(), "a", "1"))
	require.NoError(t, m.Set(context.Background(), "b", "2"))
	assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `@nexusmatch\_`, escapeLike("@nexusmatch_"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}
