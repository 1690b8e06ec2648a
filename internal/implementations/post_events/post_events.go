package postevents

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/post"
	"blogify/internal/core/domain/user"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/r3labs/sse/v2"
)

const (
	STREAM_ID          = "posts"
	POST_CREATED_EVENT = "post_created"
)

type publisher interface {
	Publish(id string, event *sse.Event)
}

type postCreated struct {
	ID            post.ID   `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	AuthorPicture string    `json:"author_picture"`
	DatePosted    time.Time `json:"date_posted"`
}

// SSE broadcasts new posts to every subscriber of STREAM_ID.
type SSE struct {
	server   publisher
	pictures user.PictureStorage
}

func NewSSE(server *sse.Server, pictures user.PictureStorage) *SSE {
	if server == nil {
		panic(e.NewNilArgumentError("server"))
	}
	if pictures == nil {
		panic(e.NewNilArgumentError("pictures"))
	}
	if !server.StreamExists(STREAM_ID) {
		server.CreateStream(STREAM_ID)
	}
	return &SSE{server: server, pictures: pictures}
}

func (s *SSE) PublishPostCreated(ctx context.Context, p post.PostWithAuthor) error {
	data, err := json.Marshal(postCreated{
		ID:            p.ID,
		Title:         p.Title,
		Author:        string(p.Author.Username),
		AuthorPicture: s.pictures.URL(p.Author.ImageFile),
		DatePosted:    p.DatePosted.UTC(),
	})
	if err != nil {
		return err
	}
	s.server.Publish(STREAM_ID, &sse.Event{
		ID:    []byte(strconv.FormatInt(int64(p.ID), 10)),
		Event: []byte(POST_CREATED_EVENT),
		Data:  data,
	})
	return nil
}
