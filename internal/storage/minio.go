package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gogotex/entertext/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// MinIOStorage is a thin wrapper around the minio client used by the object store backend.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// Object is a stored object's body together with the server-side modification time.
type Object struct {
	Body         string
	LastModified time.Time
}

// NewMinIOStorage creates a MinIO client. It does not contact the server; see EnsureBucket.
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return &MinIOStorage{client: mc, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the bucket when missing (idempotent).
func (s *MinIOStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// lost a creation race with another instance
		if exist, xerr := s.client.BucketExists(ctx, s.bucket); xerr == nil && exist {
			return nil
		}
		return fmt.Errorf("minio bucket ensure: %w", err)
	}
	return nil
}

// PutText stores body under key, replacing any previous object.
func (s *MinIOStorage) PutText(ctx context.Context, key, body string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, strings.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	return err
}

// GetText returns the object's body and LastModified, or ErrObjectNotFound.
func (s *MinIOStorage) GetText(ctx context.Context, key string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFoundOr(err)
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, notFoundOr(err)
	}
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &Object{Body: string(body), LastModified: info.LastModified.UTC()}, nil
}

// Remove deletes key. Removing a missing key succeeds.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// Ping checks that the bucket is reachable.
func (s *MinIOStorage) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func notFoundOr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return err
}
