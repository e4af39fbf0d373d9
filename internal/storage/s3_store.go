package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"storefront-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// s3API is the subset of the S3 client used by the store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3Store implements ImageStore on AWS S3.
type s3Store struct {
	client  s3API
	bucket  string
	prefix  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3ImageStore creates an S3-backed image store using the default AWS
// credential chain.
func NewS3ImageStore(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) (ImageStore, error) {
	logger = logger.With().Str("component", "s3-image-store").Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 image store initialised")

	return newS3Store(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix, cfg.BaseURL(), logger), nil
}

func newS3Store(client s3API, bucket, prefix, baseURL string, logger zerolog.Logger) *s3Store {
	return &s3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Upload stores the object under prefix/folder/<uuid><ext>.
func (s *s3Store) Upload(ctx context.Context, u Upload) (*StoredObject, error) {
	key := s.prefix + path.Join(u.Folder, uuid.New().String()+extension(u.ContentType, u.Filename))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        u.Body,
		ContentType: aws.String(u.ContentType),
	}
	if u.Size > 0 {
		input.ContentLength = aws.Int64(u.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return nil, fmt.Errorf("failed to upload object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", key).
		Int64("size", u.Size).
		Msg("image uploaded")

	return &StoredObject{
		URL:      s.baseURL + "/" + key,
		PublicID: key,
	}, nil
}

// Delete removes the object identified by publicID.
func (s *s3Store) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.bucket, publicID, err)
	}

	s.logger.Debug().Str("key", publicID).Msg("image deleted")
	return nil
}

// extension picks the file extension for a stored image.
func extension(contentType, filename string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	return strings.ToLower(path.Ext(filename))
}
