package updateuser

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	"context"
	"errors"
)

type Input struct {
	UserID   user.ID
	Username c.Optional[user.Username]
	Email    c.Optional[c.Email]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updatedUser, err := s.userRepository.Update(
		ctx,
		user.UpdateUserInput{
			ID:               input.UserID,
			DoUsernameUpdate: input.Username.IsPresent,
			Username:         input.Username.Value,
			DoEmailUpdate:    input.Email.IsPresent,
			Email:            input.Email.Value,
		},
	)
	if errors.Is(err, user.ErrUsernameAlreadyExists) || errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(ctx, "Could not update user, uniqueness violated.", logging.Entry("err", err))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("input", input),
		logging.Entry("userID", updatedUser.ID),
	)
	result.User = updatedUser
	return result, nil
}
