package passwordresetter

import (
	"blogify/internal/core/domain/user"
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DEFAULT_MAX_AGE = 30 * time.Minute

var ErrEmptySecret = errors.New("password reset secret must not be empty")

// Tokens are decoded strictly so that no two encodings map to the same bytes.
var encoding = base64.RawURLEncoding.Strict()

type claim struct {
	UserID user.ID `json:"user_id"`
}

// Issue returns b64(claim) "." b64(timestamp) "." b64(HMAC-SHA256 of the first two parts).
func Issue(userID user.ID, secret []byte, now time.Time) (user.PasswordResetToken, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}
	if userID <= 0 {
		return "", fmt.Errorf("could not issue password reset token for user %d", userID)
	}
	rawClaim, err := json.Marshal(claim{UserID: userID})
	if err != nil {
		return "", err
	}
	payload := encoding.EncodeToString(rawClaim) + "." +
		encoding.EncodeToString([]byte(strconv.FormatInt(now.UTC().Unix(), 10)))
	return user.PasswordResetToken(payload + "." + encoding.EncodeToString(sign(secret, payload))), nil
}

// Verify returns the user ID bound to a token issued with the same secret no
// more than maxAge before now. Timestamps ahead of now by more than skew are
// treated as expired.
func Verify(
	token user.PasswordResetToken,
	secret []byte,
	maxAge time.Duration,
	skew time.Duration,
	now time.Time,
) (user.ID, error) {
	if len(secret) == 0 {
		return 0, ErrEmptySecret
	}
	parts := strings.Split(string(token), ".")
	if len(parts) != 3 {
		return 0, user.ErrInvalidResetToken
	}
	rawClaim, err := encoding.DecodeString(parts[0])
	if err != nil {
		return 0, user.ErrInvalidResetToken
	}
	rawTimestamp, err := encoding.DecodeString(parts[1])
	if err != nil {
		return 0, user.ErrInvalidResetToken
	}
	issuedAt, err := strconv.ParseInt(string(rawTimestamp), 10, 64)
	if err != nil {
		return 0, user.ErrInvalidResetToken
	}
	mac, err := encoding.DecodeString(parts[2])
	if err != nil {
		return 0, user.ErrInvalidResetToken
	}

	expected := sign(secret, parts[0]+"."+parts[1])
	if subtle.ConstantTimeCompare(mac, expected) != 1 {
		return 0, user.ErrInvalidResetTokenSignature
	}

	age := now.UTC().Unix() - issuedAt
	if age > int64(maxAge/time.Second) || -age > int64(skew/time.Second) {
		return 0, user.ErrResetTokenExpired
	}

	var c claim
	decoder := json.NewDecoder(bytes.NewReader(rawClaim))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&c); err != nil {
		return 0, user.ErrInvalidResetToken
	}
	if c.UserID <= 0 {
		return 0, user.ErrInvalidResetToken
	}
	return c.UserID, nil
}

func sign(secret []byte, payload string) []byte {
	hasher := hmac.New(sha256.New, secret)
	hasher.Write([]byte(payload))
	return hasher.Sum(nil)
}

// HMAC binds Issue and Verify to a secret and a validity policy resolved at
// startup.
type HMAC struct {
	secretKey []byte
	maxAge    time.Duration
	skew      time.Duration
	now       func() time.Time
}

func NewHMAC(secretKey string, maxAge time.Duration, skew time.Duration, now func() time.Time) (*HMAC, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	if maxAge <= 0 {
		maxAge = DEFAULT_MAX_AGE
	}
	if skew < 0 {
		skew = 0
	}
	return &HMAC{
		secretKey: []byte(secretKey),
		maxAge:    maxAge,
		skew:      skew,
		now:       now,
	}, nil
}

func (h *HMAC) GenerateToken(userID user.ID) (user.PasswordResetToken, error) {
	return Issue(userID, h.secretKey, h.now())
}

func (h *HMAC) ValidateToken(token user.PasswordResetToken) (user.ID, error) {
	return Verify(token, h.secretKey, h.maxAge, h.skew, h.now())
}
