// Package storage keeps uploaded profile images on local disk. The profile
// row stores only the generated file name, never a client-supplied path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory %q: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the image under a fresh uuid name and returns that name.
func (s *ImageStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}

	return name, nil
}

// Open returns the stored image for streaming back to the client. The name
// is validated to be a bare file name so callers cannot escape the dir.
func (s *ImageStore) Open(name string) (io.ReadCloser, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid image name %q", name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	return f, nil
}
