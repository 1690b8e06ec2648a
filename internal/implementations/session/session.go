package session

import (
	"blogify/internal/core/domain/user"
	"encoding/hex"

	"github.com/google/uuid"
)

// TOKEN_LEN is the length of a generated token: two random UUIDs in hex.
const TOKEN_LEN = 64

type RandomUUIDs struct{}

func NewRandomUUIDs() *RandomUUIDs {
	return &RandomUUIDs{}
}

func (g *RandomUUIDs) GenerateToken() user.SessionToken {
	first, second := uuid.New(), uuid.New()
	buf := make([]byte, 0, len(first)+len(second))
	buf = append(buf, first[:]...)
	buf = append(buf, second[:]...)
	return user.SessionToken(hex.EncodeToString(buf))
}
