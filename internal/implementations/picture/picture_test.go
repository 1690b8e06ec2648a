package picture

import (
	"blogify/internal/core/domain/user"
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var NOW = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestThumbnailFitsSquareAndKeepsRatio(t *testing.T) {
	processor := NewThumbnailer(func() time.Time { return NOW })

	name, content, err := processor.Process(user.Picture{
		Filename: "Holiday.PNG",
		Content:  bytes.NewReader(encodePNG(t, 500, 250)),
	})

	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(name), ".png"))
	require.Len(t, strings.TrimSuffix(string(name), ".png"), 26)
	config, format, err := image.DecodeConfig(bytes.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 125, config.Width)
	require.Equal(t, 62, config.Height)
}

func TestSmallPictureIsNotUpscaled(t *testing.T) {
	processor := NewThumbnailer(func() time.Time { return NOW })

	name, content, err := processor.Process(user.Picture{
		Filename: "me.jpg",
		Content:  bytes.NewReader(encodeJPEG(t, 40, 60)),
	})

	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(name), ".jpg"))
	config, format, err := image.DecodeConfig(bytes.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 40, config.Width)
	require.Equal(t, 60, config.Height)
}

func TestNamesAreUnique(t *testing.T) {
	processor := NewThumbnailer(func() time.Time { return NOW })
	first, _, err := processor.Process(user.Picture{Filename: "a.png", Content: bytes.NewReader(encodePNG(t, 2, 2))})
	require.NoError(t, err)
	second, _, err := processor.Process(user.Picture{Filename: "a.png", Content: bytes.NewReader(encodePNG(t, 2, 2))})
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestRejectedPictures(t *testing.T) {
	processor := NewThumbnailer(func() time.Time { return NOW })
	cases := []struct {
		Name     string
		Filename string
		Content  []byte
		Err      error
	}{
		{Name: "gif", Filename: "a.gif", Content: encodePNG(t, 2, 2), Err: user.ErrPictureNotAllowed},
		{Name: "no extension", Filename: "picture", Content: encodePNG(t, 2, 2), Err: user.ErrPictureNotAllowed},
		{Name: "png named jpg", Filename: "a.jpg", Content: encodePNG(t, 2, 2), Err: user.ErrInvalidPicture},
		{Name: "garbage", Filename: "a.png", Content: []byte("not a picture"), Err: user.ErrInvalidPicture},
		{
			Name:     "too large",
			Filename: "a.png",
			Content:  bytes.Repeat([]byte{0}, MAX_SIZE_BYTES+1),
			Err:      user.ErrPictureTooLarge,
		},
		{
			Name:     "too many pixels",
			Filename: "a.png",
			Content:  withPNGDimensions(t, encodePNG(t, 2, 2), 20_000, 20_000),
			Err:      user.ErrPictureTooLarge,
		},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, _, err := processor.Process(user.Picture{Filename: c.Filename, Content: bytes.NewReader(c.Content)})
			require.ErrorIs(t, err, c.Err)
		})
	}
}

func TestLocalStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile_pics")
	storage, err := NewLocalStorage(dir, url.URL{Path: "/static/profile_pics"})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "abc.png", []byte("content")))
	saved, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	require.Equal(t, []byte("content"), saved)
	require.Equal(t, "/static/profile_pics/abc.png", storage.URL("abc.png"))

	require.NoError(t, storage.Delete(ctx, "abc.png"))
	_, err = os.Stat(filepath.Join(dir, "abc.png"))
	require.True(t, os.IsNotExist(err))
	require.NoError(t, storage.Delete(ctx, "abc.png"))

	require.Error(t, storage.Save(ctx, "../escape.png", []byte("content")))
}

func TestLocalStorageKeepsDefaultPicture(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, url.URL{Path: "/static/profile_pics"})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(user.DEFAULT_IMAGE_FILE)), []byte("x"), 0o644))

	require.NoError(t, storage.Delete(context.Background(), user.DEFAULT_IMAGE_FILE))

	_, err = os.Stat(filepath.Join(dir, string(user.DEFAULT_IMAGE_FILE)))
	require.NoError(t, err)
}

type s3ClientMock struct {
	mock.Mock
}

func (m *s3ClientMock) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	args := m.Called(*params.Bucket, *params.Key, *params.ContentType)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *s3ClientMock) DeleteObject(
	ctx context.Context,
	params *s3.DeleteObjectInput,
	optFns ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	args := m.Called(*params.Bucket, *params.Key)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func TestS3Storage(t *testing.T) {
	client := new(s3ClientMock)
	client.On("PutObject", "pics", "profile_pics/abc.png", "image/png").Return(nil)
	client.On("DeleteObject", "pics", "profile_pics/abc.png").Return(nil)
	storage := &S3Storage{
		client:  client,
		bucket:  "pics",
		prefix:  "profile_pics",
		baseURL: url.URL{Scheme: "https", Host: "pics.s3.amazonaws.com"},
	}
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "abc.png", []byte("content")))
	require.NoError(t, storage.Delete(ctx, "abc.png"))
	require.NoError(t, storage.Delete(ctx, user.DEFAULT_IMAGE_FILE))
	require.Equal(t, "https://pics.s3.amazonaws.com/profile_pics/abc.png", storage.URL("abc.png"))
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "DeleteObject", 1)
}

// withPNGDimensions rewrites the IHDR width and height of an encoded PNG
// without touching its pixel data.
func withPNGDimensions(t *testing.T, content []byte, width, height uint32) []byte {
	t.Helper()
	require.Equal(t, "IHDR", string(content[12:16]))
	patched := bytes.Clone(content)
	binary.BigEndian.PutUint32(patched[16:20], width)
	binary.BigEndian.PutUint32(patched[20:24], height)
	binary.BigEndian.PutUint32(patched[29:33], crc32.ChecksumIEEE(patched[12:29]))
	return patched
}
