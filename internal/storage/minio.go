package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds connection settings for the MinIO (S3-compatible)
// blob backend.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint" env:"CASTKIT_MINIO_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"CASTKIT_MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"CASTKIT_MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"CASTKIT_MINIO_BUCKET" envDefault:"castkit-audio"`
	UseSSL    bool   `yaml:"use_ssl" env:"CASTKIT_MINIO_USE_SSL" envDefault:"true"`
}

// Validate checks that the required connection settings are present.
func (c *MinioConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("minio endpoint cannot be empty")
	}
	if c.Bucket == "" {
		return fmt.Errorf("minio bucket cannot be empty")
	}
	return nil
}

// MinioStore is a BlobStore backed by a MinIO or S3-compatible bucket.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to the configured endpoint and ensures the
// bucket exists.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinioStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

// Put uploads the object and returns its public URL.
func (s *MinioStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind a URL previously returned by Put.
func (s *MinioStore) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return fmt.Errorf("url %q does not belong to bucket %q", url, s.bucket)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
