package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/observability"
	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/shared"
)

// MinIO keeps uploads in an S3-compatible bucket instead of local disk. The
// stored record path is the same "/uploads/<name>" shape as the disk backend;
// serving goes through presigned GET URLs.
type MinIO struct {
	client *minio.Client
	bucket string
}

func NewMinIO(cfg shared.Config) (*MinIO, error) {
	if cfg.MinIOEndpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.MinIOAccessKey == "" || cfg.MinIOSecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	cli, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := cli.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinIO{client: cli, bucket: cfg.MinIOBucket}, nil
}

func (m *MinIO) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := genName(originalName)
	// Size unknown: stream with -1 and let the client chunk.
	if _, err := m.client.PutObject(ctx, m.bucket, name, r, -1, minio.PutObjectOptions{}); err != nil {
		return "", err
	}
	observability.ObserveFile("minio", "save")
	return publicPrefix + name, nil
}

func (m *MinIO) Remove(ctx context.Context, publicPath string) error {
	name := objectName(publicPath)
	if name == "" || name == publicPath {
		return nil
	}
	// RemoveObject on a missing key is a no-op, which matches the
	// best-effort contract.
	if err := m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return err
	}
	observability.ObserveFile("minio", "remove")
	return nil
}

// PresignGet returns a time-limited download URL for a stored public path.
func (m *MinIO) PresignGet(ctx context.Context, publicPath string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName(publicPath), expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
