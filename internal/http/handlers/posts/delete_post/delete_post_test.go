package deletepost

import (
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/delete_post"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestDeletePostHandler(t *testing.T) {
	cases := []struct {
		name           string
		url            string
		serviceErr     error
		expectedStatus int
		expectCall     bool
	}{
		{name: "success", url: "/posts/3", expectedStatus: http.StatusNoContent, expectCall: true},
		{name: "invalid id", url: "/posts/-3", expectedStatus: http.StatusNotFound},
		{
			name:           "forbidden",
			url:            "/posts/3",
			serviceErr:     post.ErrPostForbidden,
			expectedStatus: http.StatusForbidden,
			expectCall:     true,
		},
		{
			name:           "not found",
			url:            "/posts/3",
			serviceErr:     post.ErrPostDoesNotExist,
			expectedStatus: http.StatusNotFound,
			expectCall:     true,
		},
		{
			name:           "unauthenticated",
			url:            "/posts/3",
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
			expectCall:     true,
		},
		{
			name:           "unexpected error",
			url:            "/posts/3",
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectCall:     true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			stub := services.NewFakeService[service.Input, service.Result](service.Result{}, testcase.serviceErr)
			router := chi.NewRouter()
			router.Method(http.MethodDelete, "/posts/{postID}", New(stub))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, testcase.url, nil))

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectCall, stub.WasCalled())
			if testcase.expectCall {
				input, _ := stub.LastInput()
				assert.Equal(t, post.ID(3), input.PostID)
			}
		})
	}
}
