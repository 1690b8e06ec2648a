package auth

import (
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services/auth"
	"net/http"
	"strings"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024
)

func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	raw, found := strings.CutPrefix(header, AUTH_TOKEN_PREFIX)
	if !found || raw == "" {
		return token, false
	}
	if len(raw) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(raw), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
