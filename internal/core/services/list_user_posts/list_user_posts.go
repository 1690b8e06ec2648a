package listuserposts

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Username user.Username
	Page     uint
}

type Result struct {
	User user.User
	Page post.Page
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	postRepository post.Repository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	postRepository post.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if postRepository == nil {
		panic(e.NewNilArgumentError("postRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		postRepository: postRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	author, err := s.userRepository.GetByUsername(ctx, input.Username)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("username", input.Username))
		return result, err
	}

	options := post.ReadOptions{
		AuthorIDEquals: c.NewOptional(author.ID, true),
		Page:           c.NewPageRequest(input.Page, post.PAGE_SIZE),
	}
	page, err := post.ReadPage(ctx, s.postRepository, options)
	if errors.Is(err, post.ErrPageDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("username", input.Username),
			logging.Entry("page", input.Page),
		)
		return result, err
	}
	return Result{User: author, Page: page}, nil
}
