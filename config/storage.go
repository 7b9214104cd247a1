package config

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrStorageDisabled is returned when no avatar bucket is configured
var ErrStorageDisabled = errors.New("avatar storage is not configured")

// S3Config holds S3 client and bucket info
type S3Config struct {
	Client     *s3.Client
	BucketName string
}

// NewS3Config initializes the S3 client for the avatar bucket. Credentials
// come from the default AWS chain.
func (c *Config) NewS3Config(ctx context.Context) (*S3Config, error) {
	if c.S3BucketName == "" {
		return nil, ErrStorageDisabled
	}

	opts := []func(*config.LoadOptions) error{}
	if c.AWSRegion != "" {
		opts = append(opts, config.WithRegion(c.AWSRegion))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: c.S3BucketName,
	}, nil
}
