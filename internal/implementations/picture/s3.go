package picture

import (
	"blogify/internal/core/domain/user"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(
		ctx context.Context,
		params *s3.DeleteObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)
}

// S3Storage stores pictures under prefix in a bucket that is publicly
// readable at baseURL.
type S3Storage struct {
	client  s3Client
	bucket  string
	prefix  string
	baseURL url.URL
}

func NewS3Storage(awsConfig aws.Config, bucket string, prefix string, baseURL url.URL, endpoint string) *S3Storage {
	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	return &S3Storage{
		client:  s3.NewFromConfig(awsConfig, clientOpts...),
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: baseURL,
	}
}

func (s *S3Storage) Save(ctx context.Context, name user.ImageFile, content []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, name user.ImageFile) error {
	if name.IsDefault() {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object: %w", err)
	}
	return nil
}

func (s *S3Storage) URL(name user.ImageFile) string {
	return s.baseURL.JoinPath(s.key(name)).String()
}

func (s *S3Storage) key(name user.ImageFile) string {
	return path.Join(s.prefix, path.Base(string(name)))
}

func contentType(name user.ImageFile) string {
	if strings.HasSuffix(strings.ToLower(string(name)), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
