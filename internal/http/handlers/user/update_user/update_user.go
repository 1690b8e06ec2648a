package updateuser

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/update_user"
	"blogify/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	if i.Username != nil {
		username := strings.TrimSpace(*i.Username)
		i.Username = &username
	}
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.NilOrNotEmpty, validation.Length(2, 20)),
		validation.Field(&i.Email, validation.NilOrNotEmpty, is.Email, validation.Length(0, 120)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{}
	if input.Username != nil {
		serviceInput.Username = c.NewOptional(user.Username(strings.TrimSpace(*input.Username)), true)
	}
	if input.Email != nil {
		serviceInput.Email = c.NewOptional(c.NewEmail(*input.Email), true)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			response.RenderError(rw, "that username is taken", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, "that email is taken", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User, h.pictureURL)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
