package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fsStore keeps objects under a base directory, served by the router at a
// public base path. Default driver for single-node deployments.
type fsStore struct {
	baseDir string
	baseURL string
}

func newFSStore(baseDir, baseURL string) (*fsStore, error) {
	if baseDir == "" {
		baseDir = "data/uploads"
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &fsStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// BaseDir exposes the root directory so the router can serve it.
func (s *fsStore) BaseDir() string {
	return s.baseDir
}

func (s *fsStore) path(key string) (string, error) {
	// Keys are generated internally, but reject traversal anyway.
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *fsStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *fsStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *fsStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *fsStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
