package createpost

import (
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"blogify/internal/core/services"
	service "blogify/internal/core/services/create_post"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pictureURL(name user.ImageFile) string {
	return "/static/profile_pics/" + string(name)
}

var POST = post.PostWithAuthor{
	Post: post.Post{
		ID:         3,
		Title:      "Hello",
		Content:    "World",
		DatePosted: time.Date(2022, 5, 6, 7, 8, 9, 0, time.UTC),
		AuthorID:   1,
	},
	Author: post.Author{ID: 1, Username: "john", ImageFile: user.DEFAULT_IMAGE_FILE},
}

func TestCreatePostHandler(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			name:           "success",
			body:           `{"title":" Hello ","content":"World\n"}`,
			expectedStatus: http.StatusCreated,
			expectedInput:  &service.Input{Title: "Hello", Content: "World"},
		},
		{
			name:           "invalid json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank title",
			body:           `{"title":"  ","content":"World"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "title too long",
			body:           `{"title":"` + strings.Repeat("x", post.TITLE_MAX_LEN+1) + `","content":"World"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "title of max length",
			body:           `{"title":"` + strings.Repeat("я", post.TITLE_MAX_LEN) + `","content":"World"}`,
			expectedStatus: http.StatusCreated,
			expectedInput:  &service.Input{Title: strings.Repeat("я", post.TITLE_MAX_LEN), Content: "World"},
		},
		{
			name:           "missing content",
			body:           `{"title":"Hello"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthenticated",
			body:           `{"title":"Hello","content":"World"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unexpected error",
			body:           `{"title":"Hello","content":"World"}`,
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			stub := services.NewFakeService[service.Input, service.Result](
				service.Result{Post: POST},
				testcase.serviceErr,
			)
			req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(testcase.body))
			rr := httptest.NewRecorder()
			New(stub, pictureURL).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedInput != nil {
				input, ok := stub.LastInput()
				require.True(t, ok)
				assert.Equal(t, *testcase.expectedInput, input)
			}
		})
	}
}

func TestCreatePostRendersPost(t *testing.T) {
	stub := services.NewFakeService[service.Input, service.Result](service.Result{Post: POST}, nil)
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"title":"Hello","content":"World"}`))
	rr := httptest.NewRecorder()
	New(stub, pictureURL).ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(
		t,
		`{"post":{"id":3,"title":"Hello","content":"World","date_posted":"2022-05-06",`+
			`"posted_at":"2022-05-06T07:08:09Z",`+
			`"author":{"id":1,"username":"john","picture_url":"/static/profile_pics/default.jpeg"}}}`,
		rr.Body.String(),
	)
}
