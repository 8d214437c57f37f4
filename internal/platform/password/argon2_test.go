package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the tests fast
var testParams = Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	encoded, err := h.Hash("hunter22")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$"))
	assert.True(t, h.Verify("hunter22", encoded))
	assert.False(t, h.Verify("hunter23", encoded))
}

func TestHash_SaltsDiffer(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerify_UsesParamsFromHash(t *testing.T) {
	old := NewArgon2Hasher(testParams)
	encoded, err := old.Hash("secret")
	require.NoError(t, err)

	stronger := testParams
	stronger.Iterations = 2
	assert.True(t, NewArgon2Hasher(stronger).Verify("secret", encoded))
}

func TestVerify_MalformedHashes(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=64,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=64,t=1,p=1$c2FsdA$",
	} {
		assert.False(t, h.Verify("anything", encoded), encoded)
	}
}

func TestDecode_ReportsMalformed(t *testing.T) {
	_, _, _, err := decode("$bcrypt$whatever")
	assert.ErrorIs(t, err, ErrMalformedHash)
}
