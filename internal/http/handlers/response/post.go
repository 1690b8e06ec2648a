package response

import (
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Post struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	DatePosted string     `json:"date_posted"`
	PostedAt   time.Time  `json:"posted_at"`
	Author     PublicUser `json:"author"`
}

func (p *Post) FromDomainPost(dp post.PostWithAuthor, pictureURL PictureURL) {
	postedAt := dp.DatePosted.UTC()
	p.ID = int64(dp.ID)
	p.Title = dp.Title
	p.Content = dp.Content
	p.DatePosted = carbon.Time2Carbon(postedAt).ToDateString()
	p.PostedAt = postedAt
	picture := dp.Author.ImageFile
	if picture.IsDefault() {
		picture = user.DEFAULT_IMAGE_FILE
	}
	p.Author = PublicUser{
		ID:         int64(dp.Author.ID),
		Username:   string(dp.Author.Username),
		PictureURL: pictureURL(picture),
	}
}

type Page struct {
	Posts      []Post `json:"posts"`
	Page       uint   `json:"page"`
	PerPage    uint   `json:"per_page"`
	TotalCount uint   `json:"total_count"`
	Pages      uint   `json:"pages"`
	HasNext    bool   `json:"has_next"`
}

func (p *Page) FromDomainPage(dp post.Page, pictureURL PictureURL) {
	p.Posts = make([]Post, 0, len(dp.Posts))
	for _, dpost := range dp.Posts {
		rpost := Post{}
		rpost.FromDomainPost(dpost, pictureURL)
		p.Posts = append(p.Posts, rpost)
	}
	p.Page = dp.Number
	p.PerPage = dp.Size
	p.TotalCount = dp.TotalCount
	p.Pages = dp.PagesCount()
	p.HasNext = dp.HasNext()
}
