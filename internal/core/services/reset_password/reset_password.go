package resetpassword

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log               logging.Logger
	userRepository    user.UserRepository
	sessionRepository user.SessionRepository
	passwordResetter  user.PasswordResetter
	passwordHasher    user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordResetter user.PasswordResetter,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:               log,
		userRepository:    userRepository,
		sessionRepository: sessionRepository,
		passwordResetter:  passwordResetter,
		passwordHasher:    passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.passwordResetter.ValidateToken(input.Token)
	if err != nil {
		s.log.Info(ctx, "Password reset token rejected.", logging.Entry("err", err))
		return result, user.ErrInvalidPasswordResetToken
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", userID))
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", userID))
		return result, err
	}
	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", userID))
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// Sessions opened with the old password must not outlive it.
	closedSessions, err := s.sessionRepository.DeleteAllForUser(ctx, u.ID)
	if err != nil {
		s.log.Warning(
			ctx,
			"Could not close sessions after password reset.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", userID),
		logging.Entry("closedSessions", closedSessions),
	)
	return result, nil
}
