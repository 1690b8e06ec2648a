package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		url          string
		expectedPage uint
		expectedErr  error
	}{
		{url: "/posts", expectedPage: 1},
		{url: "/posts?page=", expectedPage: 1},
		{url: "/posts?page=1", expectedPage: 1},
		{url: "/posts?page=42", expectedPage: 42},
		{url: "/posts?page=0", expectedErr: ErrInvalidPage},
		{url: "/posts?page=-1", expectedErr: ErrInvalidPage},
		{url: "/posts?page=abc", expectedErr: ErrInvalidPage},
		{url: "/posts?page=1000001", expectedErr: ErrInvalidPage},
		{url: "/posts?page=99999999999999999999", expectedErr: ErrInvalidPage},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, testcase.url, nil)
			page, err := ParsePage(req)
			assert.ErrorIs(t, err, testcase.expectedErr)
			assert.Equal(t, testcase.expectedPage, page)
		})
	}
}
