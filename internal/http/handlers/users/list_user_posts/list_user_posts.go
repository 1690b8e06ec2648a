package listuserposts

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/list_user_posts"
	"blogify/internal/http/handlers/pagination"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	pictureURL response.PictureURL
}

func New(
	service services.Service[service.Input, service.Result],
	pictureURL response.PictureURL,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if pictureURL == nil {
		panic(e.NewNilArgumentError("pictureURL"))
	}
	return &Handler{service: service, pictureURL: pictureURL}
}

type Result struct {
	User response.PublicUser `json:"user"`
	response.Page
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" || len(username) > 20 {
		response.RenderError(rw, "user not found", http.StatusNotFound)
		return
	}
	page, err := pagination.ParsePage(r)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Username: user.Username(username), Page: page},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderError(rw, "user not found", http.StatusNotFound)
		case errors.Is(err, post.ErrPageDoesNotExist):
			response.RenderPageNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{}
	res.User.FromDomainUser(result.User, h.pictureURL)
	res.Page.FromDomainPage(result.Page, h.pictureURL)
	response.Render(rw, res, http.StatusOK)
}
