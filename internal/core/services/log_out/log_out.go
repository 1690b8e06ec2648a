package logout

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Token user.SessionToken
	// Everywhere also ends every other session of the token owner.
	Everywhere bool
}

type Result struct {
	ClosedSessions int64
}

type service struct {
	log               logging.Logger
	sessionRepository user.SessionRepository
}

func New(
	log logging.Logger,
	sessionRepository user.SessionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{log: log, sessionRepository: sessionRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ownerID, err := s.sessionRepository.Delete(ctx, input.Token)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.ClosedSessions = 1

	if input.Everywhere {
		others, err := s.sessionRepository.DeleteAllForUser(ctx, ownerID)
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("userID", ownerID))
			return result, err
		}
		result.ClosedSessions += others
	}

	s.log.Info(
		ctx,
		"User logged out.",
		logging.Entry("userID", ownerID),
		logging.Entry("everywhere", input.Everywhere),
		logging.Entry("closedSessions", result.ClosedSessions),
	)
	return result, nil
}
