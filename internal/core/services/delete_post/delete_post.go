package deletepost

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	uow "blogify/internal/core/domain/unit_of_work"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	"context"
	"errors"
)

type Input struct {
	User   user.User
	PostID post.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(log logging.Logger, unitOfWork uow.UnitOfWork) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("postID", input.PostID))
		return result, err
	}
	defer uow.Rollback(ctx)

	existing, err := uow.Posts().GetByIDForUpdate(ctx, input.PostID)
	if errors.Is(err, post.ErrPostDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("postID", input.PostID))
		return result, err
	}
	if !existing.IsWrittenBy(input.User) {
		s.log.Info(
			ctx,
			"User is not allowed to delete the post.",
			logging.Entry("postID", input.PostID),
			logging.Entry("userID", input.User.ID),
		)
		return result, post.ErrPostForbidden
	}

	if err := uow.Posts().Delete(ctx, input.PostID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("postID", input.PostID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("postID", input.PostID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Post successfully deleted.",
		logging.Entry("postID", input.PostID),
		logging.Entry("userID", input.User.ID),
	)
	return result, nil
}
