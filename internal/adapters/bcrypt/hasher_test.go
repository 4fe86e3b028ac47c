package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4) // minimum cost keeps the test fast

	hash, err := h.Hash("garden-gnome-42")
	require.NoError(t, err)
	assert.NotEqual(t, "garden-gnome-42", hash)

	assert.NoError(t, h.Compare(hash, "garden-gnome-42"))
	assert.Error(t, h.Compare(hash, "wrong-password"))
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher(4)

	_, err := h.Hash("")
	assert.Error(t, err)
}
