package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, CheckPassword("correct horse battery staple", digest))
}

func TestCheckPasswordWrongPlaintext(t *testing.T) {
	digest, err := HashPassword("right")
	require.NoError(t, err)
	assert.False(t, CheckPassword("wrong", digest))
}

func TestCheckPasswordGarbageDigest(t *testing.T) {
	assert.False(t, CheckPassword("anything", "not-a-bcrypt-digest"))
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same input", first))
	assert.True(t, CheckPassword("same input", second))
}
