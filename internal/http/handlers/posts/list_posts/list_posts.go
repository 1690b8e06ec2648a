package listposts

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/list_posts"
	"blogify/internal/http/handlers/pagination"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	page, err := pagination.ParsePage(r)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Page: page})
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPageDoesNotExist):
			response.RenderPageNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	p := response.Page{}
	p.FromDomainPage(result.Page, h.pictureURL)
	response.Render(rw, p, http.StatusOK)
}
