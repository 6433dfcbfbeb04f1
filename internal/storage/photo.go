// Package storage holds the complaint photo stores: S3-compatible object
// storage when configured, local disk otherwise.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStore persists complaint photos and returns the key the ticket
// record carries.
type PhotoStore interface {
	StorePhoto(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// LocalPhotoStore writes photos under a directory on disk. It is the
// fallback when no object storage is configured.
type LocalPhotoStore struct {
	dir string
}

// NewLocalPhotoStore creates the store, making the directory if needed.
func NewLocalPhotoStore(dir string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo dir: %w", err)
	}
	return &LocalPhotoStore{dir: dir}, nil
}

// StorePhoto writes the photo and returns its key. Keys are flattened to a
// single path element so a crafted key cannot escape the directory.
func (s *LocalPhotoStore) StorePhoto(_ context.Context, key, _ string, data []byte) (string, error) {
	name := strings.ReplaceAll(key, "/", "_")
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return name, nil
}
