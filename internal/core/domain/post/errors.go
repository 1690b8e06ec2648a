package post

import "errors"

var (
	ErrPostDoesNotExist = errors.New("post does not exist")
	ErrPostForbidden    = errors.New("post belongs to another user")
	ErrPageDoesNotExist = errors.New("page does not exist")
)
