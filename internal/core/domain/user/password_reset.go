package user

import (
	"context"
	"errors"
	"fmt"
)

type PasswordResetToken string

// ErrInvalidPasswordResetToken is the only reset token failure callers are
// expected to act on. The wrapped kinds below are kept apart for logging.
var ErrInvalidPasswordResetToken = errors.New("invalid or expired token")

var (
	ErrInvalidResetToken          = fmt.Errorf("%w: malformed token", ErrInvalidPasswordResetToken)
	ErrInvalidResetTokenSignature = fmt.Errorf("%w: signature mismatch", ErrInvalidPasswordResetToken)
	ErrResetTokenExpired          = fmt.Errorf("%w: token expired", ErrInvalidPasswordResetToken)
)

type PasswordResetter interface {
	GenerateToken(userID ID) (PasswordResetToken, error)
	// ValidateToken returns the user ID bound to the token or an error
	// wrapping ErrInvalidPasswordResetToken.
	ValidateToken(token PasswordResetToken) (ID, error)
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User, token PasswordResetToken) error
}
