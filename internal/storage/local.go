package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists uploaded files and yields a public URL path for each.
type FileStore interface {
	Save(name string, src io.Reader) (string, error)
}

// LocalStore writes uploads to a directory on the local filesystem. The
// directory is served as static content under PublicPrefix.
type LocalStore struct {
	baseDir      string
	publicPrefix string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(baseDir, publicPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir, publicPrefix: strings.TrimSuffix(publicPrefix, "/")}, nil
}

// Save buffers src fully into baseDir/name and returns the public URL path.
// An existing file with the same name is replaced.
func (s *LocalStore) Save(name string, src io.Reader) (string, error) {
	name = filepath.Base(name)

	dst, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return s.publicPrefix + "/" + name, nil
}

// BaseDir reports the directory served as static content.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}
