package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Store uploads blobs to an S3 bucket exposed at a public base URL.
// Locators are the absolute public URLs, stored verbatim in the imagen column.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string // e.g. https://bucket.s3.amazonaws.com — no trailing slash
	logger    zerolog.Logger
}

func NewS3Store(ctx context.Context, bucket, region, publicURL string, logger zerolog.Logger) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS configuration: %w", err)
	}

	logger = logger.With().Str("component", "s3-blob-store").Logger()
	logger.Info().Str("bucket", bucket).Str("region", region).Msg("S3 blob store initialised")

	return &S3Store{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key, err := newKey(contentType)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to put object")
		return "", fmt.Errorf("storage: put object (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("blob uploaded")
	return s.publicURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, locator string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(locator, s.publicURL), "/")
	if key == "" || !strings.HasPrefix(key, prefix+"/") {
		return fmt.Errorf("storage: invalid locator %q", locator)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete object")
		return fmt.Errorf("storage: delete object (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().Str("key", key).Msg("blob deleted")
	return nil
}
