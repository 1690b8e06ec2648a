package loginwithemail

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	"context"
	"errors"
	"time"
)

const (
	SESSION_DURATION          = 24 * time.Hour
	REMEMBER_SESSION_DURATION = 30 * 24 * time.Hour
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
	Remember bool
}

func (i Input) GetRateLimitKey() string {
	return "log-in-with-email::" + string(i.Email)
}

type Result struct {
	Token     user.SessionToken
	ExpiresAt time.Time
}

type service struct {
	log                   logging.Logger
	userRepository        user.UserRepository
	sessionRepository     user.SessionRepository
	passwordHasher        user.PasswordHasher
	sessionTokenGenerator user.SessionTokenGenerator
	now                   func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenGenerator user.SessionTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		passwordHasher:        passwordHasher,
		sessionTokenGenerator: sessionTokenGenerator,
		now:                   now,
	}
}

func SessionDuration(remember bool) time.Duration {
	if remember {
		return REMEMBER_SESSION_DURATION
	}
	return SESSION_DURATION
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.authenticate(ctx, input)
	if err != nil {
		return result, err
	}

	createdAt := s.now()
	session := user.CreateSessionInput{
		UserID:    u.ID,
		Token:     s.sessionTokenGenerator.GenerateToken(),
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(SessionDuration(input.Remember)),
	}
	err = s.sessionRepository.Create(ctx, session)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not open session.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User logged in.",
		logging.Entry("userID", u.ID),
		logging.Entry("remember", input.Remember),
		logging.Entry("expiresAt", session.ExpiresAt),
	)
	return Result{Token: session.Token, ExpiresAt: session.ExpiresAt}, nil
}

// authenticate reports an unknown email and a wrong password alike.
func (s *service) authenticate(ctx context.Context, input Input) (u user.User, err error) {
	u, err = s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Hash anyway so both failures take about the same time.
		s.passwordHasher.HashPassword(input.Password)
		s.log.Info(ctx, "Log in attempt with unknown email.", logging.Entry("email", input.Email))
		return u, user.ErrInvalidCredentials
	}
	if errors.Is(err, context.Canceled) {
		return u, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return u, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		s.log.Info(ctx, "Log in attempt with wrong password.", logging.Entry("userID", u.ID))
		return u, user.ErrInvalidCredentials
	}
	return u, nil
}
