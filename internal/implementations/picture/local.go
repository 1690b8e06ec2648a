package picture

import (
	"blogify/internal/core/domain/user"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStorage keeps pictures in a directory served as static files.
type LocalStorage struct {
	dir     string
	baseURL url.URL
}

func NewLocalStorage(dir string, baseURL url.URL) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Save(ctx context.Context, name user.ImageFile, content []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func (s *LocalStorage) Delete(ctx context.Context, name user.ImageFile) error {
	if name.IsDefault() {
		return nil
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStorage) URL(name user.ImageFile) string {
	return s.baseURL.JoinPath(string(name)).String()
}

func (s *LocalStorage) path(name user.ImageFile) (string, error) {
	base := filepath.Base(string(name))
	if base != string(name) || base == "." || base == ".." {
		return "", fmt.Errorf("invalid picture name %q", name)
	}
	return filepath.Join(s.dir, base), nil
}
