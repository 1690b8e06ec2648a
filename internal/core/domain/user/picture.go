package user

import (
	"context"
	"io"
)

type Picture struct {
	Filename string
	Content  io.Reader
}

// PictureProcessor validates an uploaded picture and produces the thumbnail
// that is actually stored.
type PictureProcessor interface {
	Process(picture Picture) (ImageFile, []byte, error)
}

type PictureStorage interface {
	Save(ctx context.Context, name ImageFile, content []byte) error
	Delete(ctx context.Context, name ImageFile) error
	URL(name ImageFile) string
}
