package storage

import (
	"context"
	"io"
	"time"
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file. Missing files wrap fs.ErrNotExist.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// DeleteOlderThan removes files under prefix last modified before cutoff
	// and returns how many were removed.
	DeleteOlderThan(ctx context.Context, prefix string, cutoff time.Time) (int, error)
}
