package uow

import (
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/db"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestRollbackDiscardsChanges() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().NoError(err)
	u, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username: "john", Email: "john@test.test", PasswordHash: "hash", CreatedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Require().NoError(uow.Rollback(ctx))

	uow, err = s.uow.Begin(ctx)
	s.Require().NoError(err)
	defer uow.Rollback(ctx)
	_, err = uow.Users().GetByID(ctx, u.ID)
	s.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (s *testSuite) TestPostLockSerializesUpdates() {
	postID := s.createPost()

	var wg sync.WaitGroup
	var lock sync.Mutex
	wg.Add(10)
	count := 0

	for i := 0; i < 10; i++ {
		go func(i int) {
			defer wg.Done()
			ctx := context.Background()
			uow, err := s.uow.Begin(ctx)
			if err != nil {
				s.Fail("could not begin unit of work")
				return
			}
			defer uow.Rollback(ctx)

			p, err := uow.Posts().GetByIDForUpdate(ctx, postID)
			if err != nil {
				s.Fail("could not lock post", "%v", err)
				return
			}
			_, err = uow.Posts().Update(ctx, post.UpdateInput{
				ID:      postID,
				Title:   fmt.Sprintf("%s|%d", p.Title, i),
				Content: p.Content,
			})
			if err != nil {
				s.Fail("could not update post", "%v", err)
				return
			}
			if err := uow.Commit(ctx); err != nil {
				s.Fail("could not commit", "%v", err)
				return
			}
			lock.Lock()
			count++
			lock.Unlock()
		}(i)
	}

	wg.Wait()
	s.Equal(10, count)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().NoError(err)
	defer uow.Rollback(ctx)
	p, err := uow.Posts().GetByID(ctx, postID)
	s.Require().NoError(err)
	s.Len(p.Title, len("T")+10*len("|0"))
}

func (s *testSuite) createPost() post.ID {
	s.T().Helper()
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username: "john", Email: "john@test.test", PasswordHash: "hash", CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.FailNowf("could not create user", "%v", err)
	}
	p, err := uow.Posts().Create(ctx, post.CreateInput{
		Title: "T", Content: "Content", DatePosted: time.Now().UTC(), AuthorID: u.ID,
	})
	if err != nil {
		s.FailNowf("could not create post", "%v", err)
	}
	if err := uow.Commit(ctx); err != nil {
		s.FailNowf("could not commit", "%v", err)
	}
	return p.ID
}

func (s *testSuite) TestRollbackAfterCommitIsNoOp() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().NoError(err)
	_, err = uow.Users().Create(ctx, user.CreateUserInput{
		Username: "john", Email: "john@test.test", PasswordHash: "hash", CreatedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Require().NoError(uow.Commit(ctx))

	s.NoError(uow.Rollback(ctx))
}
