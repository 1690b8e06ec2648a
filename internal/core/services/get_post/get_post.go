package getpost

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	PostID post.ID
}

type Result struct {
	Post post.PostWithAuthor
}

type service struct {
	log            logging.Logger
	postRepository post.Repository
}

func New(log logging.Logger, postRepository post.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if postRepository == nil {
		panic(e.NewNilArgumentError("postRepository"))
	}
	return &service{log: log, postRepository: postRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	p, err := s.postRepository.GetByID(ctx, input.PostID)
	if errors.Is(err, post.ErrPostDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("postID", input.PostID))
		return result, err
	}
	return Result{Post: p}, nil
}
