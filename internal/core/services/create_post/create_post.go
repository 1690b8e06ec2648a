package createpost

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	"context"
	"time"
)

type Input struct {
	User    user.User
	Title   string
	Content string
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	Post post.PostWithAuthor
}

type service struct {
	log            logging.Logger
	postRepository post.Repository
	publisher      post.EventPublisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	postRepository post.Repository,
	publisher post.EventPublisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if postRepository == nil {
		panic(e.NewNilArgumentError("postRepository"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		postRepository: postRepository,
		publisher:      publisher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	createdPost, err := s.postRepository.Create(ctx, post.CreateInput{
		Title:      input.Title,
		Content:    input.Content,
		DatePosted: s.now(),
		AuthorID:   input.User.ID,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	result.Post = post.PostWithAuthor{
		Post: createdPost,
		Author: post.Author{
			ID:        input.User.ID,
			Username:  input.User.Username,
			ImageFile: input.User.Picture(),
		},
	}
	if err := s.publisher.PublishPostCreated(ctx, result.Post); err != nil {
		s.log.Warning(
			ctx,
			"Could not publish post created event.",
			logging.Entry("postID", createdPost.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"Post successfully created.",
		logging.Entry("postID", createdPost.ID),
		logging.Entry("userID", input.User.ID),
	)
	return result, nil
}
