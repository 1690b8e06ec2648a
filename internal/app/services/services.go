package services

import (
	"blogify/internal/app/deps"
	drl "blogify/internal/core/domain/rate_limiter"
	"blogify/internal/core/services"
	"blogify/internal/core/services/auth"
	createpost "blogify/internal/core/services/create_post"
	deletepost "blogify/internal/core/services/delete_post"
	getpost "blogify/internal/core/services/get_post"
	getuserbysessiontoken "blogify/internal/core/services/get_user_by_session_token"
	listposts "blogify/internal/core/services/list_posts"
	listuserposts "blogify/internal/core/services/list_user_posts"
	loginwithemail "blogify/internal/core/services/log_in_with_email"
	logout "blogify/internal/core/services/log_out"
	ratelimiting "blogify/internal/core/services/rate_limiting"
	resetpassword "blogify/internal/core/services/reset_password"
	sendpasswordresettoken "blogify/internal/core/services/send_password_reset_token"
	signupwithemail "blogify/internal/core/services/sign_up_with_email"
	updatepost "blogify/internal/core/services/update_post"
	updateprofilepicture "blogify/internal/core/services/update_profile_picture"
	updateuser "blogify/internal/core/services/update_user"
	verifypasswordresettoken "blogify/internal/core/services/verify_password_reset_token"
)

type Services struct {
	SignUpWithEmail          services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail           services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                   services.Service[logout.Input, logout.Result]
	GetUserBySessionToken    services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser               services.Service[updateuser.Input, updateuser.Result]
	UpdateProfilePicture     services.Service[updateprofilepicture.Input, updateprofilepicture.Result]
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]

	CreatePost    services.Service[createpost.Input, createpost.Result]
	GetPost       services.Service[getpost.Input, getpost.Result]
	UpdatePost    services.Service[updatepost.Input, updatepost.Result]
	DeletePost    services.Service[deletepost.Input, deletepost.Result]
	ListPosts     services.Service[listposts.Input, listposts.Result]
	ListUserPosts services.Service[listuserposts.Input, listuserposts.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: deps.Config.SignUpRateLimitPerHour},
		signupwithemail.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: deps.Config.LogInRateLimitPerHour},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.UserSessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(deps.Logger, deps.SessionRepository)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(),
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(deps.Logger, deps.UserRepository),
	)
	s.UpdateProfilePicture = auth.WithAuthentication(
		deps.SessionRepository,
		updateprofilepicture.New(
			deps.Logger,
			deps.UserRepository,
			deps.PictureProcessor,
			deps.PictureStorage,
		),
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: deps.Config.PasswordResetRateLimitPerHour},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetter,
			deps.PasswordResetTokenSender,
		),
	)
	s.VerifyPasswordResetToken = verifypasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetter,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.SessionRepository,
		deps.PasswordResetter,
		deps.PasswordHasher,
	)

	s.CreatePost = auth.WithAuthentication(
		deps.SessionRepository,
		createpost.New(deps.Logger, deps.PostRepository, deps.PostEventPublisher, deps.Now),
	)
	s.GetPost = getpost.New(deps.Logger, deps.PostRepository)
	s.UpdatePost = auth.WithAuthentication(
		deps.SessionRepository,
		updatepost.New(deps.Logger, deps.UnitOfWork),
	)
	s.DeletePost = auth.WithAuthentication(
		deps.SessionRepository,
		deletepost.New(deps.Logger, deps.UnitOfWork),
	)
	s.ListPosts = listposts.New(deps.Logger, deps.PostRepository)
	s.ListUserPosts = listuserposts.New(deps.Logger, deps.UserRepository, deps.PostRepository)

	return s
}
