package session

import (
	"blogify/internal/core/domain/user"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTokensAreUniqueHexEncodedUUIDPairs(t *testing.T) {
	generator := NewRandomUUIDs()
	tokens := make(map[user.SessionToken]struct{})
	for i := 0; i < 100; i++ {
		token := generator.GenerateToken()
		require.Len(t, string(token), TOKEN_LEN)

		raw, err := hex.DecodeString(string(token))
		require.NoError(t, err)
		for _, half := range [][]byte{raw[:16], raw[16:]} {
			parsed, err := uuid.FromBytes(half)
			require.NoError(t, err)
			require.Equal(t, uuid.Version(4), parsed.Version())
		}

		require.NotContains(t, tokens, token)
		tokens[token] = struct{}{}
	}
}
