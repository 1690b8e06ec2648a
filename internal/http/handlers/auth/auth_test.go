package auth

import (
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services/auth"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		name          string
		header        string
		expectedToken user.SessionToken
		expectedOK    bool
	}{
		{name: "valid", header: "Bearer test-token", expectedToken: "test-token", expectedOK: true},
		{name: "empty header", header: "", expectedOK: false},
		{name: "no prefix", header: "test-token", expectedOK: false},
		{name: "other scheme", header: "Basic dGVzdA==", expectedOK: false},
		{name: "empty token", header: "Bearer ", expectedOK: false},
		{
			name:          "max length",
			header:        "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN),
			expectedToken: user.SessionToken(strings.Repeat("a", AUTH_TOKEN_MAX_LEN)),
			expectedOK:    true,
		},
		{name: "too long", header: "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1), expectedOK: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if testcase.header != "" {
				req.Header.Set("Authorization", testcase.header)
			}
			token, ok := ParseToken(req)
			assert.Equal(t, testcase.expectedOK, ok)
			assert.Equal(t, testcase.expectedToken, token)
		})
	}
}

func TestSetAuthTokenToContext(t *testing.T) {
	var token user.SessionToken
	var found bool
	handler := SetAuthTokenToContext(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		token, found = auth.TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, found)
	assert.Equal(t, user.SessionToken("test-token"), token)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, found)
}
