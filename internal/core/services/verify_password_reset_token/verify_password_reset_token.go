package verifypasswordresettoken

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Token user.PasswordResetToken
}

type Result struct {
	User user.User
}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordResetter user.PasswordResetter
}

// New resolves the owner of a reset token. A token whose user no longer
// exists fails exactly like a forged one.
func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordResetter: passwordResetter,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.passwordResetter.ValidateToken(input.Token)
	if err != nil {
		s.log.Info(ctx, "Password reset token rejected.", logging.Entry("err", err))
		return result, user.ErrInvalidPasswordResetToken
	}

	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", userID))
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", userID))
		return result, err
	}
	return Result{User: u}, nil
}
