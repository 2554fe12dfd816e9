package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	require.True(t, Verify("secret1", hash))
	require.False(t, Verify("secret2", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret1")
	require.NoError(t, err)
	second, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	require.False(t, Verify("secret1", ""))
	require.False(t, Verify("secret1", "not-a-hash"))
	require.False(t, Verify("secret1", "$argon2id$v=19$broken"))
}
