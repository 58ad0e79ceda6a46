package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectPutter is the subset of the S3 client used by s3Store.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client  objectPutter
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Store creates an S3-backed store. Objects are addressed under
// publicBaseURL, or the bucket's virtual-hosted URL when that is empty.
func NewS3Store(ctx context.Context, bucket, region, publicBaseURL string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-media-store").Logger()

	// Load AWS configuration
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 media store initialised")

	return newS3Store(s3.NewFromConfig(cfg), bucket, region, publicBaseURL, logger), nil
}

func newS3Store(client objectPutter, bucket, region, publicBaseURL string, logger zerolog.Logger) *s3Store {
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &s3Store{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:  logger,
	}
}

// Put uploads body under the key name.
func (s *s3Store) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", name).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, name, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", name).
		Msg("upload stored in S3")

	return s.baseURL + "/" + name, nil
}

// fallbackStore tries S3 first, then falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Prefix  string
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then falls back to the
// local file system. If s3Store is nil, only the file store is used.
func NewFallbackStore(s3Store, fileStore Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Prefix:  s3Prefix,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-media-store").Logger(),
	}
}

// Put stores body in S3 under s3Prefix+name, or locally under name when S3 is
// unavailable. The body is buffered so it can be replayed on fallback.
func (s *fallbackStore) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	if !s.s3Enabled || s.s3Store == nil {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local file system")
		return s.fileStore.Put(ctx, name, contentType, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := s.s3Prefix + name
	url, err := s.s3Store.Put(ctx, key, contentType, bytes.NewReader(data))
	if err == nil {
		return url, nil
	}

	s.logger.Warn().
		Err(err).
		Str("s3_key", key).
		Msg("failed to store in S3, falling back to local file system")

	return s.fileStore.Put(ctx, name, contentType, bytes.NewReader(data))
}
