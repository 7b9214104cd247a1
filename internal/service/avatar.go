package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/profilsaya/backend/config"
)

// MaxAvatarBytes is the largest accepted avatar upload.
const MaxAvatarBytes = 5 << 20

var avatarTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectUploader is the part of the S3 client used for avatars.
type ObjectUploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AvatarService stores profile pictures in S3.
type AvatarService struct {
	client ObjectUploader
	bucket string
	logger *zap.Logger
}

// NewAvatarService creates a new AvatarService from the S3 configuration.
func NewAvatarService(s3Config *config.S3Config, logger *zap.Logger) *AvatarService {
	return NewAvatarServiceWithClient(s3Config.Client, s3Config.BucketName, logger)
}

func NewAvatarServiceWithClient(client ObjectUploader, bucket string, logger *zap.Logger) *AvatarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvatarService{client: client, bucket: bucket, logger: logger.Named("avatar")}
}

// Upload stores data as a new avatar of userID and returns its public URL.
// The content type is sniffed from the data, not taken from the client.
func (s *AvatarService) Upload(ctx context.Context, userID string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", newValidationError("avatar", "Avatar file is empty")
	}
	if len(data) > MaxAvatarBytes {
		return "", newValidationError("avatar", "Avatar must be at most 5 MB")
	}

	detected := mimetype.Detect(data)
	var contentType, ext string
	for ct, e := range avatarTypes {
		if detected.Is(ct) {
			contentType, ext = ct, e
			break
		}
	}
	if contentType == "" {
		return "", newValidationError("avatar", "Avatar must be a PNG, JPEG, GIF or WebP image")
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		s.logger.Error("uploading avatar failed", zap.String("user_id", userID), zap.Error(err))
		return "", persistenceError("upload avatar", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	s.logger.Info("avatar uploaded", zap.String("user_id", userID), zap.String("key", key))
	return publicURL, nil
}
