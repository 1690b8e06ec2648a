package post

import (
	"blogify/internal/core/domain/user"
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	Posts          []Post
	UserRepository user.UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeRepository(userRepository user.UserRepository) *FakeRepository {
	return &FakeRepository{UserRepository: userRepository}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (p Post, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not create post %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Posts {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p = Post{
		ID:         maxID + 1,
		Title:      input.Title,
		Content:    input.Content,
		DatePosted: input.DatePosted,
		AuthorID:   input.AuthorID,
	}
	r.Posts = append(r.Posts, p)
	return p, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (p PostWithAuthor, err error) {
	found, err := r.GetByIDForUpdate(ctx, id)
	if err != nil {
		return p, err
	}
	return r.withAuthor(ctx, found)
}

func (r *FakeRepository) GetByIDForUpdate(ctx context.Context, id ID) (p Post, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not get post %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, p := range r.Posts {
		if p.ID == id {
			return p, nil
		}
	}
	return p, ErrPostDoesNotExist
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (p Post, err error) {
	if r.ReturnError {
		return p, fmt.Errorf("could not update post %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, p := range r.Posts {
		if p.ID == input.ID {
			r.Posts[ix].Title = input.Title
			r.Posts[ix].Content = input.Content
			return r.Posts[ix], nil
		}
	}
	return p, ErrPostDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete post %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, p := range r.Posts {
		if p.ID == id {
			r.Posts = append(r.Posts[:ix], r.Posts[ix+1:]...)
			return nil
		}
	}
	return ErrPostDoesNotExist
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]PostWithAuthor, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not read posts")
	}
	filtered := r.filter(options)
	offset := int(options.Page.Offset())
	if offset >= len(filtered) {
		return []PostWithAuthor{}, nil
	}
	end := offset + int(options.Page.Limit())
	if end > len(filtered) {
		end = len(filtered)
	}
	result := make([]PostWithAuthor, 0, end-offset)
	for _, p := range filtered[offset:end] {
		withAuthor, err := r.withAuthor(ctx, p)
		if err != nil {
			return nil, err
		}
		result = append(result, withAuthor)
	}
	return result, nil
}

func (r *FakeRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not count posts")
	}
	return uint(len(r.filter(options))), nil
}

func (r *FakeRepository) filter(options ReadOptions) []Post {
	r.lock.Lock()
	defer r.lock.Unlock()
	filtered := make([]Post, 0, len(r.Posts))
	for _, p := range r.Posts {
		if options.AuthorIDEquals.IsPresent && p.AuthorID != options.AuthorIDEquals.Value {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].DatePosted.Equal(filtered[j].DatePosted) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].DatePosted.After(filtered[j].DatePosted)
	})
	return filtered
}

func (r *FakeRepository) withAuthor(ctx context.Context, p Post) (PostWithAuthor, error) {
	author, err := r.UserRepository.GetByID(ctx, p.AuthorID)
	if err != nil {
		return PostWithAuthor{}, err
	}
	return PostWithAuthor{
		Post:   p,
		Author: Author{ID: author.ID, Username: author.Username, ImageFile: author.Picture()},
	}, nil
}

type FakeEventPublisher struct {
	Published   []PostWithAuthor
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEventPublisher() *FakeEventPublisher {
	return &FakeEventPublisher{}
}

func (p *FakeEventPublisher) PublishPostCreated(ctx context.Context, post PostWithAuthor) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish post %d", post.ID)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, post)
	return nil
}
