package media

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// S3API is the slice of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store persists report images and synthesized audio in S3.
type S3Store struct {
	client    S3API
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewS3Store creates a media store backed by the given bucket. When
// publicURL is empty the standard virtual-hosted URL form is used.
func NewS3Store(client *s3.Client, bucket, publicURL string) *S3Store {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		publicURL: publicURL,
	}
}

// NewS3StoreWithAPI builds a store over a narrow client for tests.
// Presigning is unavailable on it.
func NewS3StoreWithAPI(client S3API, bucket, publicURL string) *S3Store {
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}
	return &S3Store{client: client, bucket: bucket, publicURL: publicURL}
}

var _ providers.MediaStore = (*S3Store)(nil)

// PutObject stores a blob under key and returns its public URL.
func (s *S3Store) PutObject(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}
	if len(metadata) > 0 {
		input.Metadata = metadata
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", apperrors.NewExternalError("failed to store media object", err)
	}
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// PresignPut returns a URL a client can PUT an object to directly.
func (s *S3Store) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	if s.presigner == nil {
		return "", apperrors.NewInternalError("presigning not configured", nil)
	}

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", apperrors.NewExternalError("failed to presign upload", err)
	}
	return req.URL, nil
}
