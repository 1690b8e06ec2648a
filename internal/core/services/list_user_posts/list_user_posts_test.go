package listuserposts

import (
	c "blogify/internal/core/domain/common"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var START = time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PostRepository *post.FakeRepository
	Service        services.Service[Input, Result]
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.UserRepository = user.NewFakeUserRepository()
	s.PostRepository = post.NewFakeRepository(s.UserRepository)
	s.Service = New(s.Logger, s.UserRepository, s.PostRepository)

	ctx := context.Background()
	john := s.createUser("john")
	jane := s.createUser("jane")
	for i, authorID := range []user.ID{john.ID, jane.ID, john.ID, jane.ID, john.ID} {
		_, err := s.PostRepository.Create(ctx, post.CreateInput{
			Title:      "Post",
			Content:    "Content",
			DatePosted: START.Add(time.Duration(i) * time.Minute),
			AuthorID:   authorID,
		})
		s.Require().NoError(err)
	}
}

func TestListUserPostsService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestOnlyAuthorPostsAreListed() {
	result, err := s.Service.Run(context.Background(), Input{Username: "john"})

	assert := s.Require()
	assert.NoError(err)
	assert.Equal(user.Username("john"), result.User.Username)
	assert.Equal(uint(3), result.Page.TotalCount)
	assert.Len(result.Page.Posts, 3)
	for _, p := range result.Page.Posts {
		assert.Equal(result.User.ID, p.AuthorID)
		assert.Equal(user.Username("john"), p.Author.Username)
	}
	assert.True(result.Page.Posts[0].DatePosted.After(result.Page.Posts[1].DatePosted))
}

func (s *testSuite) TestUnknownUsername() {
	_, err := s.Service.Run(context.Background(), Input{Username: "nobody"})

	s.ErrorIs(err, user.ErrUserDoesNotExist)
	s.Equal(0, s.Logger.CountByLevel(logging.ERROR))
}

func (s *testSuite) TestPagePastLast() {
	_, err := s.Service.Run(context.Background(), Input{Username: "jane", Page: 2})

	s.ErrorIs(err, post.ErrPageDoesNotExist)
	s.Equal(0, s.Logger.CountByLevel(logging.ERROR))
}

func (s *testSuite) TestRepositoryError() {
	s.PostRepository.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Username: "jane"})

	s.Error(err)
	s.Equal(1, s.Logger.CountByLevel(logging.ERROR))
}

func (s *testSuite) createUser(username user.Username) user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(context.Background(), user.CreateUserInput{
		Username:     username,
		Email:        c.NewEmail(string(username) + "@test.test"),
		PasswordHash: "hash",
		CreatedAt:    START,
	})
	s.Require().NoError(err)
	return u
}
