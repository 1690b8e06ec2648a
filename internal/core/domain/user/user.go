package user

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"fmt"
	"time"
)

const DEFAULT_IMAGE_FILE = ImageFile("default.jpeg")

type ID int64

type Username string

type ImageFile string

func (f ImageFile) IsDefault() bool {
	return f == "" || f == DEFAULT_IMAGE_FILE
}

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type User struct {
	ID           ID
	Username     Username
	Email        c.Email
	ImageFile    ImageFile
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Username == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username is not set for user %d", u.ID))
	}
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}

func (u *User) Picture() ImageFile {
	if u.ImageFile == "" {
		return DEFAULT_IMAGE_FILE
	}
	return u.ImageFile
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type SessionTokenGenerator interface {
	GenerateToken() SessionToken
}
