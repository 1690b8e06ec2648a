package post

import (
	c "blogify/internal/core/domain/common"
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/user"
	"fmt"
	"time"
)

const (
	TITLE_MAX_LEN   = 120
	CONTENT_MAX_LEN = 100_000
	PAGE_SIZE       = 5
)

type ID int64

type Post struct {
	ID         ID
	Title      string
	Content    string
	DatePosted time.Time
	AuthorID   user.ID
}

func (p *Post) Validate() error {
	if p.Title == "" {
		return e.NewInvalidStateError(fmt.Sprintf("title is not set for post %d", p.ID))
	}
	if p.AuthorID == 0 {
		return e.NewInvalidStateError(fmt.Sprintf("author is not set for post %d", p.ID))
	}
	return nil
}

func (p *Post) IsWrittenBy(u user.User) bool {
	return p.AuthorID == u.ID
}

type Author struct {
	ID        user.ID
	Username  user.Username
	ImageFile user.ImageFile
}

type PostWithAuthor struct {
	Post
	Author Author
}

// Page is one page of posts ordered from the newest to the oldest.
type Page struct {
	Posts      []PostWithAuthor
	Number     uint
	Size       uint
	TotalCount uint
}

func (p Page) PagesCount() uint {
	return c.PagesCount(p.TotalCount, p.Size)
}

func (p Page) HasNext() bool {
	return p.Number < p.PagesCount()
}
