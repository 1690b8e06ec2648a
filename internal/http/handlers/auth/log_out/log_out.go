package logout

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	logout "blogify/internal/core/services/log_out"
	"blogify/internal/http/handlers/auth"
	"blogify/internal/http/handlers/response"
	"errors"
	"net/http"
	"strconv"
)

const EVERYWHERE_QUERY_PARAM = "everywhere"

type Result struct {
	ClosedSessions int64 `json:"closed_sessions"`
}

type Handler struct {
	service services.Service[logout.Input, logout.Result]
}

func New(
	service services.Service[logout.Input, logout.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	everywhere, ok := parseEverywhere(r)
	if !ok {
		response.RenderInvalidRequestData(rw)
		return
	}
	result, err := h.service.Run(
		r.Context(),
		logout.Input{Token: token, Everywhere: everywhere},
	)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	response.Render(rw, Result{ClosedSessions: result.ClosedSessions}, http.StatusOK)
}

func parseEverywhere(r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get(EVERYWHERE_QUERY_PARAM)
	if raw == "" {
		return false, true
	}
	everywhere, err := strconv.ParseBool(raw)
	return everywhere, err == nil
}
