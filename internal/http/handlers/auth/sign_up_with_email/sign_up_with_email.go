package signupwithemail

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	ratelimiter "blogify/internal/core/domain/rate_limiter"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	signupwithemail "blogify/internal/core/services/sign_up_with_email"
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
	service    services.Service[signupwithemail.Input, signupwithemail.Result]
	pictureURL response.PictureURL
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
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
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	i.Username = strings.TrimSpace(i.Username)
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(2, 20)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 120)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
		validation.Field(
			&i.ConfirmPassword,
			validation.Required,
			validation.In(i.Password).Error("passwords do not match"),
		),
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

	result, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Username: user.Username(strings.TrimSpace(input.Username)),
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
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
	response.Render(rw, Result{User: u}, http.StatusCreated)
}
