package session

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndResolve(t *testing.T) {
	store := NewMemoryStore()

	token, err := store.Create(42)
	require.NoError(t, err)

	// 256 bits of entropy, hex-encoded.
	assert.Len(t, token, 64)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	userID, ok := store.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)
}

func TestTokensAreUnique(t *testing.T) {
	store := NewMemoryStore()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := store.Create(int64(i))
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
	assert.Equal(t, 100, store.Count())
}

func TestResolveUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Resolve("deadbeef")
	assert.False(t, ok)
}

func TestRevokeIsIdempotent(t *testing.T) {
	store := NewMemoryStore()

	token, err := store.Create(7)
	require.NoError(t, err)
	other, err := store.Create(8)
	require.NoError(t, err)

	store.Revoke(token)
	_, ok := store.Resolve(token)
	assert.False(t, ok)

	// Revoking again is a no-op and leaves other sessions alone.
	store.Revoke(token)
	userID, ok := store.Resolve(other)
	require.True(t, ok)
	assert.Equal(t, int64(8), userID)
	assert.Equal(t, 1, store.Count())
}
