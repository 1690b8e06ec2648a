package listposts

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Page uint
}

type Result struct {
	Page post.Page
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
	options := post.ReadOptions{Page: c.NewPageRequest(input.Page, post.PAGE_SIZE)}
	page, err := post.ReadPage(ctx, s.postRepository, options)
	if errors.Is(err, post.ErrPageDoesNotExist) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("page", input.Page))
		return result, err
	}
	return Result{Page: page}, nil
}
