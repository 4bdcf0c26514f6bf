// Package storage uploads images to the Supabase Storage bucket through its
// S3-compatible endpoint.
package storage

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/config"
	"github.com/LCtech96/EmilyBoutique/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
)

const cacheControl = "max-age=3600"

// PutObjectAPI is the subset of *s3.Client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type SupabaseStorage struct {
	client        PutObjectAPI
	bucket        string
	publicBaseURL string
	logger        *logger.Logger
}

func NewSupabaseStorage(client PutObjectAPI, bucket string, supabaseURL string, log *logger.Logger) *SupabaseStorage {
	base := strings.TrimRight(supabaseURL, "/") + "/storage/v1/object/public/" + bucket
	return &SupabaseStorage{client: client, bucket: bucket, publicBaseURL: base, logger: log}
}

// NewS3Client builds a path-style S3 client for the Supabase endpoint.
func NewS3Client(ctx context.Context, cfg config.StorageConfig, supabaseURL string) (*s3.Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = strings.TrimRight(supabaseURL, "/") + "/storage/v1/s3"
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *SupabaseStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	s.logger.Debugw("uploaded object", "bucket", s.bucket, "key", key, "bytes", len(data))
	return s.PublicURL(key), nil
}

func (s *SupabaseStorage) PublicURL(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return s.publicBaseURL + "/" + strings.Join(parts, "/")
}
