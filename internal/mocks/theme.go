package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/profilsaya/backend/internal/service"
	"github.com/pageza/profilsaya/backend/internal/theme"
)

// MockThemeService is a mock implementation of the ThemeService interface
type MockThemeService struct {
	mock.Mock
}

var _ service.IThemeService = (*MockThemeService)(nil)

func (m *MockThemeService) OpenSession(ctx context.Context, userID string) (*theme.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*theme.Session), args.Error(1)
}

func (m *MockThemeService) Discard(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// MockAvatarService is a mock implementation of the AvatarService interface
type MockAvatarService struct {
	mock.Mock
}

var _ service.IAvatarService = (*MockAvatarService)(nil)

func (m *MockAvatarService) Upload(ctx context.Context, userID string, data []byte) (string, error) {
	args := m.Called(ctx, userID, data)
	return args.String(0), args.Error(1)
}

// MockObjectUploader is a mock implementation of the S3 PutObject call
type MockObjectUploader struct {
	mock.Mock
}

var _ service.ObjectUploader = (*MockObjectUploader)(nil)

func (m *MockObjectUploader) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}
