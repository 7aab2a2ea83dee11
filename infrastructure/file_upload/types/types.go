package types

import (
	"context"
	"errors"
	"time"
)

var ErrFileNotFound = errors.New("file not found")

// FileStore keeps reference face images.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	CheckFileExists(ctx context.Context, key string) (bool, error)
	GenerateDownloadURL(ctx context.Context, key string, expiry time.Duration) (*string, error)
}
