package post

import (
	c "blogify/internal/core/domain/common"
	"blogify/internal/core/domain/user"
	"context"
	"time"
)

type CreateInput struct {
	Title      string
	Content    string
	DatePosted time.Time
	AuthorID   user.ID
}

type UpdateInput struct {
	ID      ID
	Title   string
	Content string
}

type ReadOptions struct {
	AuthorIDEquals c.Optional[user.ID]
	Page           c.PageRequest
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Post, error)
	GetByID(ctx context.Context, id ID) (PostWithAuthor, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id ID) (Post, error)
	Update(ctx context.Context, input UpdateInput) (Post, error)
	Delete(ctx context.Context, id ID) error
	Read(ctx context.Context, options ReadOptions) ([]PostWithAuthor, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
}

// EventPublisher notifies live subscribers about new posts.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, p PostWithAuthor) error
}

// ReadPage fetches one page of posts together with the total count. The first
// page always exists, any later one only up to the last page.
func ReadPage(ctx context.Context, repository Repository, options ReadOptions) (page Page, err error) {
	posts, err := repository.Read(ctx, options)
	if err != nil {
		return page, err
	}
	total, err := repository.Count(ctx, options)
	if err != nil {
		return page, err
	}
	page = Page{
		Posts:      posts,
		Number:     options.Page.Number,
		Size:       options.Page.Size,
		TotalCount: total,
	}
	if page.Number > 1 && page.Number > page.PagesCount() {
		return Page{}, ErrPageDoesNotExist
	}
	return page, nil
}
