package updatepost

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/update_post"
	"blogify/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Result struct {
	Post response.Post `json:"post"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	i.Title = strings.TrimSpace(i.Title)
	i.Content = strings.TrimSpace(i.Content)
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.RuneLength(1, post.TITLE_MAX_LEN)),
		validation.Field(&i.Content, validation.Required, validation.Length(1, post.CONTENT_MAX_LEN)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID < 1 {
		response.RenderPostNotFound(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			PostID:  post.ID(postID),
			Title:   strings.TrimSpace(input.Title),
			Content: strings.TrimSpace(input.Content),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, post.ErrPostDoesNotExist):
			response.RenderPostNotFound(rw)
		case errors.Is(err, post.ErrPostForbidden):
			response.RenderForbidden(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	p := response.Post{}
	p.FromDomainPost(result.Post, h.pictureURL)
	response.Render(rw, Result{Post: p}, http.StatusOK)
}
