package updateprofilepicture

import (
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const NEW_PICTURE = "01HBX0R3JQ4Y8F5P2D6S7T9V0W.png"

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	Processor      *user.FakePictureProcessor
	Storage        *user.FakePictureStorage
	Service        services.Service[Input, Result]
	User           user.User
}

func (s *testSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.UserRepository = user.NewFakeUserRepository()
	s.Processor = user.NewFakePictureProcessor(NEW_PICTURE)
	s.Storage = user.NewFakePictureStorage()
	s.Service = New(s.Logger, s.UserRepository, s.Processor, s.Storage)

	u, err := s.UserRepository.Create(context.Background(), user.CreateUserInput{
		Username: "john", Email: "john@test.test", PasswordHash: "hash", CreatedAt: time.Now(),
	})
	s.Require().NoError(err)
	s.User = u
}

func TestUpdateProfilePictureService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) run() (Result, error) {
	input := Input{Picture: user.Picture{Filename: "me.png", Content: strings.NewReader("png-bytes")}}
	return s.Service.Run(context.Background(), input.WithAuthenticatedUser(s.User).(Input))
}

func (s *testSuite) TestSuccess() {
	result, err := s.run()

	assert := s.Require()
	assert.NoError(err)
	assert.Equal(user.ImageFile(NEW_PICTURE), result.User.ImageFile)
	assert.Equal([]byte("png-bytes"), s.Storage.Files[NEW_PICTURE])
	assert.Empty(s.Storage.Deleted)
}

func (s *testSuite) TestPreviousPictureDeleted() {
	updated, err := s.UserRepository.Update(context.Background(), user.UpdateUserInput{
		ID: s.User.ID, DoImageFileUpdate: true, ImageFile: "old.jpg",
	})
	s.Require().NoError(err)
	s.User = updated
	s.Storage.Files["old.jpg"] = []byte("old")

	_, err = s.run()

	assert := s.Require()
	assert.NoError(err)
	assert.Equal([]user.ImageFile{"old.jpg"}, s.Storage.Deleted)
	assert.NotContains(s.Storage.Files, user.ImageFile("old.jpg"))
}

func (s *testSuite) TestRejectedPicture() {
	s.Processor.Err = user.ErrPictureNotAllowed

	_, err := s.run()

	s.ErrorIs(err, user.ErrPictureNotAllowed)
	s.Empty(s.Storage.Files)
}

func (s *testSuite) TestStorageError() {
	s.Storage.ReturnError = true

	_, err := s.run()

	s.Error(err)
	u, err := s.UserRepository.GetByID(context.Background(), s.User.ID)
	s.Require().NoError(err)
	s.Equal(user.DEFAULT_IMAGE_FILE, u.ImageFile)
}

func (s *testSuite) TestRepositoryErrorRemovesSavedPicture() {
	s.UserRepository.ReturnError = true

	_, err := s.run()

	s.Error(err)
	s.Equal([]user.ImageFile{NEW_PICTURE}, s.Storage.Deleted)
	s.Empty(s.Storage.Files)
}
