// Package uploads stores user-submitted images in S3-compatible object
// storage (AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2).
package uploads

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/keymaxprot/backend/internal/config"
)

// Storage is the narrow slice of object storage the upload handler needs.
// The interface keeps tests off the network.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	PublicURL(key string) string
}

type s3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewStorage builds an S3 backed Storage from the environment. Returns
// (nil, nil) when S3_BUCKET is not set.
func NewStorage(ctx context.Context, cfg config.Config) (Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.S3Region),
	}
	if key, secret := config.EnvDefault("S3_KEY", ""), config.EnvDefault("S3_SECRET", ""); key != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("uploads: load aws config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.S3Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}

	baseURL := cfg.S3PublicURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &s3Storage{
		client:  s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:  cfg.S3Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *s3Storage) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("uploads: put %s: %w", key, err)
	}
	return nil
}

func (s *s3Storage) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
