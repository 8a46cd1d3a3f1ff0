package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct horse battery staple", digest)
	assert.True(t, h.Check("correct horse battery staple", digest))
	assert.False(t, h.Check("incorrect horse", digest))
}

func TestCheck_MalformedDigest(t *testing.T) {
	h := NewHasher()

	assert.False(t, h.Check("anything", ""))
	assert.False(t, h.Check("anything", "not-a-bcrypt-digest"))
	assert.False(t, h.Check("anything", "$2a$$garbage"))
}

func TestHash_LongSecretTruncated(t *testing.T) {
	h := NewHasher()

	long := strings.Repeat("a", 100)
	digest, err := h.Hash(long)
	require.NoError(t, err)

	// Everything past 72 bytes is cut before hashing, so two secrets that
	// agree on the first 72 bytes verify interchangeably.
	assert.True(t, h.Check(long, digest))
	assert.True(t, h.Check(strings.Repeat("a", 72), digest))
	assert.True(t, h.Check(strings.Repeat("a", 72)+"different-tail", digest))
	assert.False(t, h.Check(strings.Repeat("a", 71), digest))
}

func TestHash_DistinctDigestsPerCall(t *testing.T) {
	h := NewHasher()

	d1, err := h.Hash("password123")
	require.NoError(t, err)
	d2, err := h.Hash("password123")
	require.NoError(t, err)

	// Fresh salt every time
	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Check("password123", d1))
	assert.True(t, h.Check("password123", d2))
}
