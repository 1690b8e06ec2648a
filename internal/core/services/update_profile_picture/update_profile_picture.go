package updateprofilepicture

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	"context"
	"errors"
)

type Input struct {
	User    user.User
	Picture user.Picture
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	processor      user.PictureProcessor
	storage        user.PictureStorage
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	processor user.PictureProcessor,
	storage user.PictureStorage,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if processor == nil {
		panic(e.NewNilArgumentError("processor"))
	}
	if storage == nil {
		panic(e.NewNilArgumentError("storage"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		processor:      processor,
		storage:        storage,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	name, content, err := s.processor.Process(input.Picture)
	if errors.Is(err, user.ErrInvalidPicture) ||
		errors.Is(err, user.ErrPictureNotAllowed) ||
		errors.Is(err, user.ErrPictureTooLarge) {
		s.log.Info(
			ctx,
			"Uploaded picture rejected.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("filename", input.Picture.Filename),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	if err := s.storage.Save(ctx, name, content); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID), logging.Entry("name", name))
		return result, err
	}

	updatedUser, err := s.userRepository.Update(ctx, user.UpdateUserInput{
		ID:                input.User.ID,
		DoImageFileUpdate: true,
		ImageFile:         name,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		s.deletePicture(ctx, name)
		return result, err
	}

	previous := input.User.Picture()
	if !previous.IsDefault() && previous != name {
		s.deletePicture(ctx, previous)
	}

	s.log.Info(
		ctx,
		"Profile picture successfully updated.",
		logging.Entry("userID", updatedUser.ID),
		logging.Entry("imageFile", updatedUser.ImageFile),
	)
	return Result{User: updatedUser}, nil
}

func (s *service) deletePicture(ctx context.Context, name user.ImageFile) {
	if err := s.storage.Delete(ctx, name); err != nil {
		s.log.Warning(ctx, "Could not delete picture.", logging.Entry("name", name), logging.Entry("err", err))
	}
}
