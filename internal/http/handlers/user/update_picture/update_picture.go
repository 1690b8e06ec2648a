package updatepicture

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/update_profile_picture"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"
)

const (
	FORM_FIELD     = "picture"
	MAX_BODY_BYTES = 6 << 20
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
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(rw, r.Body, MAX_BODY_BYTES)
	file, header, err := r.FormFile(FORM_FIELD)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.RenderError(rw, "picture is too large", http.StatusRequestEntityTooLarge)
			return
		}
		response.RenderError(rw, "picture is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.service.Run(
		r.Context(),
		service.Input{Picture: user.Picture{Filename: header.Filename, Content: file}},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrPictureNotAllowed):
			response.RenderError(rw, "only jpg and png pictures are allowed", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrPictureTooLarge):
			response.RenderError(rw, "picture is too large", http.StatusRequestEntityTooLarge)
		case errors.Is(err, user.ErrInvalidPicture):
			response.RenderError(rw, "invalid picture", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User, h.pictureURL)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
