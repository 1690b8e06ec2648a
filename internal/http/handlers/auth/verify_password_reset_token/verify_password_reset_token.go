package verifypasswordresettoken

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/verify_password_reset_token"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MAX_TOKEN_LEN bounds the path segment before any decoding happens.
const MAX_TOKEN_LEN = 1024

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" || len(token) > MAX_TOKEN_LEN {
		response.RenderError(rw, user.ErrInvalidPasswordResetToken.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Token: user.PasswordResetToken(token)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidPasswordResetToken):
			response.RenderError(rw, user.ErrInvalidPasswordResetToken.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{UserID: int64(result.User.ID), Username: string(result.User.Username)},
		http.StatusOK,
	)
}
