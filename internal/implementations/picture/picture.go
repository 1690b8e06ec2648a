package picture

import (
	"blogify/internal/core/domain/user"
	"bytes"
	"crypto/rand"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/image/draw"
)

const (
	THUMBNAIL_SIZE = 125
	MAX_SIZE_BYTES = 5 << 20
	// MAX_PIXELS bounds the memory a decoded picture may take.
	MAX_PIXELS = 40_000_000
)

var formatByExtension = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
}

// Thumbnailer shrinks uploaded pictures to fit a THUMBNAIL_SIZE square and
// names them with a ULID keeping the original extension.
type Thumbnailer struct {
	now func() time.Time
}

func NewThumbnailer(now func() time.Time) *Thumbnailer {
	return &Thumbnailer{now: now}
}

func (t *Thumbnailer) Process(picture user.Picture) (name user.ImageFile, content []byte, err error) {
	ext := strings.ToLower(filepath.Ext(picture.Filename))
	format, ok := formatByExtension[ext]
	if !ok {
		return name, nil, user.ErrPictureNotAllowed
	}
	if picture.Content == nil {
		return name, nil, user.ErrInvalidPicture
	}

	raw, err := io.ReadAll(io.LimitReader(picture.Content, MAX_SIZE_BYTES+1))
	if err != nil {
		return name, nil, err
	}
	if len(raw) > MAX_SIZE_BYTES {
		return name, nil, user.ErrPictureTooLarge
	}

	config, configFormat, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || configFormat != format {
		return name, nil, user.ErrInvalidPicture
	}
	if config.Width <= 0 || config.Height <= 0 {
		return name, nil, user.ErrInvalidPicture
	}
	if int64(config.Width)*int64(config.Height) > MAX_PIXELS {
		return name, nil, user.ErrPictureTooLarge
	}

	img, decodedFormat, err := image.Decode(bytes.NewReader(raw))
	if err != nil || decodedFormat != format {
		return name, nil, user.ErrInvalidPicture
	}

	var out bytes.Buffer
	thumbnail := thumbnail(img, THUMBNAIL_SIZE)
	switch format {
	case "jpeg":
		err = jpeg.Encode(&out, thumbnail, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&out, thumbnail)
	default:
		err = errors.New("unsupported picture format " + format)
	}
	if err != nil {
		return name, nil, err
	}

	id, err := ulid.New(ulid.Timestamp(t.now()), rand.Reader)
	if err != nil {
		return name, nil, err
	}
	return user.ImageFile(strings.ToLower(id.String()) + ext), out.Bytes(), nil
}

// thumbnail keeps the aspect ratio and never upscales.
func thumbnail(src image.Image, size int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= size && h <= size {
		return src
	}
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
