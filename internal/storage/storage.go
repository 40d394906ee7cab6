// Package storage provides S3-compatible object storage for resume files.
// Each organization owns one private bucket named by its ID.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/hubhr/hubhr/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// ErrBucketNotFound means the org's bucket does not exist yet.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrObjectExists means an object already occupies the target key.
	// Uploads never overwrite.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound means the requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectTooLarge means the upload exceeds the per-file size cap.
	ErrObjectTooLarge = errors.New("object exceeds size limit")
)

// ResumeStore is the object storage interface for resume blobs.
type ResumeStore interface {
	// Upload writes an object, refusing to overwrite an existing key.
	// Returns ErrBucketNotFound when the bucket is missing so callers
	// can run bucket recovery and retry.
	Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
	// Download reads an object in full.
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	// SignedURL returns a time-limited download URL for an object.
	SignedURL(ctx context.Context, bucket, key string) (string, error)
	// EnsureBucket creates the bucket if missing. Idempotent.
	EnsureBucket(ctx context.Context, bucket string) error
}

// MinioStore implements ResumeStore against any S3-compatible endpoint.
type MinioStore struct {
	client       *minio.Client
	maxSize      int64
	signedURLTTL time.Duration
}

// NewMinioStore connects to the configured S3-compatible endpoint.
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return &MinioStore{
		client:       client,
		maxSize:      cfg.MaxResumeSize,
		signedURLTTL: cfg.SignedURLTTL,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	if s.maxSize > 0 && size > s.maxSize {
		return ErrObjectTooLarge
	}

	// No-overwrite: an existing object at this key is a hard error.
	_, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return ErrObjectExists
	}
	if code := minio.ToErrorResponse(err).Code; code != "NoSuchKey" {
		if code == "NoSuchBucket" {
			return ErrBucketNotFound
		}
		return fmt.Errorf("stat object %q: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchBucket" {
			return ErrBucketNotFound
		}
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey":
			return nil, ErrObjectNotFound
		case "NoSuchBucket":
			return nil, ErrBucketNotFound
		}
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func (s *MinioStore) SignedURL(ctx context.Context, bucket, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, s.signedURLTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, err)
	}
	return u.String(), nil
}

func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, checkErr := s.client.BucketExists(ctx, bucket)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	return nil
}

var _ ResumeStore = (*MinioStore)(nil)
