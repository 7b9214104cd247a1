package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/profilsaya/backend/internal/mocks"
	"github.com/pageza/profilsaya/backend/internal/service"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadAvatar(t *testing.T) {
	uploader := &mocks.MockObjectUploader{}
	uploader.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "avatars-bucket" &&
			strings.HasPrefix(aws.ToString(in.Key), "avatars/u1/") &&
			strings.HasSuffix(aws.ToString(in.Key), ".png") &&
			aws.ToString(in.ContentType) == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil)

	avatars := service.NewAvatarServiceWithClient(uploader, "avatars-bucket", zaptest.NewLogger(t))
	url, err := avatars.Upload(context.Background(), "u1", pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://avatars-bucket.s3.amazonaws.com/avatars/u1/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)
	uploader.AssertExpectations(t)
}

func TestUploadAvatarRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		message string
	}{
		{"empty", nil, "Avatar file is empty"},
		{"too large", append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, service.MaxAvatarBytes)...), "Avatar must be at most 5 MB"},
		{"not an image", []byte("just some text"), "Avatar must be a PNG, JPEG, GIF or WebP image"},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), "Avatar must be a PNG, JPEG, GIF or WebP image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &mocks.MockObjectUploader{}
			avatars := service.NewAvatarServiceWithClient(uploader, "bucket", zaptest.NewLogger(t))

			_, err := avatars.Upload(context.Background(), "u1", tt.data)
			var verr *service.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Message)
			uploader.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadAvatarStorageFailure(t *testing.T) {
	uploader := &mocks.MockObjectUploader{}
	uploader.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	avatars := service.NewAvatarServiceWithClient(uploader, "bucket", zaptest.NewLogger(t))
	_, err := avatars.Upload(context.Background(), "u1", []byte("GIF89a\x01\x00\x01\x00"))
	assert.ErrorIs(t, err, service.ErrPersistence)

	var perr *service.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "failed to upload avatar", perr.PublicMessage())
}
