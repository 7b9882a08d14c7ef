package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/config"
)

// Store is the object storage surface used for receipt files, avatars,
// continuity photos and rental listing photos.
type Store interface {
	// Put uploads the object and returns its public URL.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Driver names accepted in config.
const (
	DriverS3     = "s3"
	DriverFS     = "fs"
	DriverMemory = "memory"
)

// New builds the store selected by the config driver.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case DriverS3:
		return newS3Store(cfg)
	case DriverFS, "":
		return newFSStore(cfg.Storage.BaseDir, cfg.Storage.PublicBaseURL)
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// MakeKey builds an object key under a kind prefix, keeping the original
// extension: receipts/8f14e45f-....pdf
func MakeKey(kind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return kind + "/" + uuid.NewString() + ext
}
