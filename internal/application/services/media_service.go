package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecogai/pollution-backend/internal/domain/providers"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

const uploadURLTTL = 15 * time.Minute

// MediaService backs the standalone image upload endpoint. Older client
// builds upload the photo first and attach the returned URL to the
// report instead of inlining imageBase64.
type MediaService struct {
	media providers.MediaStore
}

// NewMediaService creates a new media service.
func NewMediaService(media providers.MediaStore) *MediaService {
	return &MediaService{media: media}
}

// UploadImageInput carries an inline base64 payload or, when the
// payload is empty, a request for a presigned direct-upload URL.
type UploadImageInput struct {
	UserID      string `json:"userId"`
	ImageBase64 string `json:"imageBase64"`
	ContentType string `json:"contentType"`
}

// UploadImageResult reports where the image lives. Exactly one of
// ImageURL and UploadURL is set.
type UploadImageResult struct {
	Key       string `json:"key"`
	ImageURL  string `json:"imageUrl,omitempty"`
	UploadURL string `json:"uploadUrl,omitempty"`
	ExpiresIn int64  `json:"expiresIn,omitempty"`
}

// UploadImage stores an inline image and returns its public URL. With
// no payload it presigns a PUT URL the client uploads to directly.
func (s *MediaService) UploadImage(ctx context.Context, input UploadImageInput) (*UploadImageResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}

	contentType := input.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("pollution-images/%s.jpg", uuid.New().String())

	if input.ImageBase64 == "" {
		uploadURL, err := s.media.PresignPut(ctx, key, contentType, uploadURLTTL)
		if err != nil {
			return nil, err
		}
		return &UploadImageResult{
			Key:       key,
			UploadURL: uploadURL,
			ExpiresIn: int64(uploadURLTTL.Seconds()),
		}, nil
	}

	// Accept both raw base64 and data URLs from older client builds.
	payload := input.ImageBase64
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperrors.NewValidationError("imageBase64 is not valid base64")
	}

	url, err := s.media.PutObject(ctx, key, data, contentType, map[string]string{"userId": input.UserID})
	if err != nil {
		return nil, err
	}
	return &UploadImageResult{Key: key, ImageURL: url}, nil
}
