package security_test

import (
	"strings"
	"testing"

	"github.com/shoptodo/shoptodo-backend/pkg/config"
	"github.com/shoptodo/shoptodo-backend/pkg/security"
	"github.com/stretchr/testify/require"
)

var fastParams = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("password123", fastParams)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$"))

	ok, err := security.VerifyPassword("password123", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = security.VerifyPassword("bogus-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := security.HashPassword("same", fastParams)
	require.NoError(t, err)
	second, err := security.HashPassword("same", fastParams)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := security.HashPassword("", fastParams)
	require.Error(t, err)
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, encoded := range []string{
		"not-a-hash",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=16$m=8,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8,t=1,p=1$!!$a2V5",
	} {
		_, err := security.VerifyPassword("irrelevant", encoded)
		require.ErrorIs(t, err, security.ErrInvalidHash, encoded)
	}
}
