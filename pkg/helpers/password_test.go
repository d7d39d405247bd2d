package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", hash)

	assert.True(t, CompareHashAndPassword(hash, "Passw0rd!"))
	assert.False(t, CompareHashAndPassword(hash, "wrong-password"))
}

func TestHashPassword_SaltVaries(t *testing.T) {
	h1, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	h2, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
