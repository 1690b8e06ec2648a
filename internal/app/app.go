package app

import (
	"blogify/internal/app/deps"
	"blogify/internal/app/services"
	"blogify/internal/http/handlers/auth"
	loginwithemail "blogify/internal/http/handlers/auth/log_in_with_email"
	logout "blogify/internal/http/handlers/auth/log_out"
	resetpassword "blogify/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "blogify/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "blogify/internal/http/handlers/auth/sign_up_with_email"
	verifypasswordresettoken "blogify/internal/http/handlers/auth/verify_password_reset_token"
	createpost "blogify/internal/http/handlers/posts/create_post"
	deletepost "blogify/internal/http/handlers/posts/delete_post"
	"blogify/internal/http/handlers/posts/events"
	getpost "blogify/internal/http/handlers/posts/get_post"
	listposts "blogify/internal/http/handlers/posts/list_posts"
	updatepost "blogify/internal/http/handlers/posts/update_post"
	"blogify/internal/http/handlers/response"
	"blogify/internal/http/handlers/user/me"
	updatepicture "blogify/internal/http/handlers/user/update_picture"
	updateuser "blogify/internal/http/handlers/user/update_user"
	listuserposts "blogify/internal/http/handlers/users/list_user_posts"
	"blogify/internal/http/middleware"
	postevents "blogify/internal/implementations/post_events"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const POST_ID_PATTERN = "/{postID:[0-9]+}"

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	pictureURL := response.PictureURL(deps.PictureStorage.URL)

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail, pictureURL))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(
		http.MethodPost,
		"/password_reset",
		sendpasswordresettoken.New(s.SendPasswordResetToken),
	)
	authRouter.Method(
		http.MethodGet,
		"/password_reset/{token}",
		verifypasswordresettoken.New(s.VerifyPasswordResetToken),
	)
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/", me.New(s.GetUserBySessionToken, pictureURL))
	profileRouter.Method(http.MethodPatch, "/", updateuser.New(s.UpdateUser, pictureURL))
	profileRouter.Method(http.MethodPut, "/picture", updatepicture.New(s.UpdateProfilePicture, pictureURL))

	postsRouter := chi.NewRouter()
	postsRouter.Use(auth.SetAuthTokenToContext)
	postsRouter.Method(http.MethodGet, "/", listposts.New(s.ListPosts, pictureURL))
	postsRouter.Method(http.MethodPost, "/", createpost.New(s.CreatePost, pictureURL))
	postsRouter.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, postevents.STREAM_ID),
	)
	postsRouter.Method(http.MethodGet, POST_ID_PATTERN, getpost.New(s.GetPost, pictureURL))
	postsRouter.Method(http.MethodPut, POST_ID_PATTERN, updatepost.New(s.UpdatePost, pictureURL))
	postsRouter.Method(http.MethodDelete, POST_ID_PATTERN, deletepost.New(s.DeletePost))

	usersRouter := chi.NewRouter()
	usersRouter.Method(http.MethodGet, "/{username}/posts", listuserposts.New(s.ListUserPosts, pictureURL))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/posts", postsRouter)
	router.Mount("/users", usersRouter)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	if deps.LocalPictureStorage != nil {
		prefix := staticPrefix(deps.Config.PictureBaseURL.Path)
		router.Handle(
			prefix+"*",
			http.StripPrefix(prefix, http.FileServer(http.Dir(deps.LocalPictureStorage.Dir()))),
		)
	}

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           router,
		Addr:              address,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func staticPrefix(path string) string {
	if path == "" {
		path = "/static/profile_pics/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
