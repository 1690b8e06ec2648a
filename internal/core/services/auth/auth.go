package auth

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
)

type contextKey struct{}

func WithToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

func TokenFromContext(ctx context.Context) (user.SessionToken, bool) {
	token, ok := ctx.Value(contextKey{}).(user.SessionToken)
	return token, ok && token != ""
}

// Input is implemented by inputs of services that act on behalf of the
// session owner.
type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type authenticated[T Input, S any] struct {
	sessionRepository user.SessionRepository
	inner             services.Service[T, S]
}

// WithAuthentication resolves the session token stored by WithToken and hands
// its owner to inner. A missing, expired or unknown token is reported as
// user.ErrUserDoesNotExist.
func WithAuthentication[T Input, S any](
	sessionRepository user.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &authenticated[T, S]{sessionRepository: sessionRepository, inner: inner}
}

func (s *authenticated[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return result, user.ErrUserDoesNotExist
	}
	owner, err := s.sessionRepository.GetUserByToken(ctx, token)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(owner).(T))
}
