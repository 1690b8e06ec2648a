package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

const MAX_PAGE = 1_000_000

var ErrInvalidPage = errors.New("invalid page")

// ParsePage reads the 1-based "page" query parameter, defaulting to 1.
func ParsePage(r *http.Request) (uint, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || page < 1 || page > MAX_PAGE {
		return 0, ErrInvalidPage
	}
	return uint(page), nil
}
