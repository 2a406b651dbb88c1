// Package storage stores uploaded files (menu images) on a local directory
// or an S3-compatible bucket behind one Disk interface.
//
//	disk, err := storage.Default()
//	err = disk.Put(ctx, "menu/3f2a.jpg", file, "image/jpeg")
//	url := disk.URL("menu/3f2a.jpg")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get for a missing object.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is implemented by the local and s3 drivers.
type Disk interface {
	// Put writes r to path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error

	// Get returns the full content at path.
	Get(ctx context.Context, path string) ([]byte, error)

	Exists(ctx context.Context, path string) bool

	// Delete removes path. Deleting a missing object is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string

	Name() string
}
