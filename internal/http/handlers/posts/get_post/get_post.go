package getpost

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/get_post"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"
	"strconv"

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
	Post response.Post `json:"post"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID < 1 {
		response.RenderPostNotFound(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{PostID: post.ID(postID)})
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPostDoesNotExist):
			response.RenderPostNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	p := response.Post{}
	p.FromDomainPost(result.Post, h.pictureURL)
	response.Render(rw, Result{Post: p}, http.StatusOK)
}
