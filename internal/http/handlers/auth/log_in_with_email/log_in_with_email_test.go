package loginwithemail

import (
	c "blogify/internal/core/domain/common"
	ratelimiter "blogify/internal/core/domain/rate_limiter"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/log_in_with_email"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var EXPIRES_AT = time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

func TestLogInWithEmailHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"email":"john@test.test","password":"secret"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"token":"test-session-token","expires_at":"2022-01-02T00:00:00Z"}`,
		},
		{
			name:           "invalid json",
			body:           `[]`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request data"}`,
		},
		{
			name:           "missing password",
			body:           `{"email":"john@test.test"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"password":"cannot be blank"}`,
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"john@test.test","password":"secret"}`,
			serviceErr:     user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:           "rate limit exceeded",
			body:           `{"email":"john@test.test","password":"secret"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "unexpected error",
			body:           `{"email":"john@test.test","password":"secret"}`,
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			stub := services.NewFakeService[service.Input, service.Result](
				service.Result{Token: "test-session-token", ExpiresAt: EXPIRES_AT},
				testcase.serviceErr,
			)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()
			New(stub).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestLogInWithEmailPassesRememberFlag(t *testing.T) {
	stub := services.NewFakeService[service.Input, service.Result](service.Result{}, nil)
	body := `{"email":"John@Test.test","password":"secret","remember":true}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	New(stub).ServeHTTP(httptest.NewRecorder(), req)

	input, ok := stub.LastInput()
	require.True(t, ok)
	assert.Equal(t, c.Email("john@test.test"), input.Email)
	assert.Equal(t, user.RawPassword("secret"), input.Password)
	assert.True(t, input.Remember)
}
