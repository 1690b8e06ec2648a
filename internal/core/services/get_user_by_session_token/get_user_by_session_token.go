package getuserbysessiontoken

import (
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	"context"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct{}

// New returns the user resolved by the authentication decorator, so it is
// only useful wrapped with auth.WithAuthentication.
func New() services.Service[Input, Result] {
	return &service{}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	return Result{User: input.User}, nil
}
