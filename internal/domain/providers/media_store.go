package providers

import (
	"context"
	"time"
)

// MediaStore persists report images and synthesized audio. The
// production adapter writes to S3 and returns the object's public URL.
type MediaStore interface {
	// PutObject stores a blob under key and returns its URL.
	PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) (string, error)

	// PresignPut returns a URL a client can PUT an object to directly.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}
