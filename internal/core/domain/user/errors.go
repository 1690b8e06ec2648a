package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrUserDoesNotExist      = errors.New("user does not exist")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrSessionDoesNotExist   = errors.New("session does not exist")
)

var (
	ErrInvalidPicture    = errors.New("invalid picture")
	ErrPictureNotAllowed = errors.New("picture format is not allowed")
	ErrPictureTooLarge   = errors.New("picture is too large")
)
