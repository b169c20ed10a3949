package objectstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"claimgate/internal/config"
)

// Client wraps the MinIO SDK as the durable content store for claim
// documents. Objects are opaque blobs; no content inspection happens here.
type Client struct {
	client        *minio.Client
	bucket        string
	presignExpire time.Duration
}

func New(ctx context.Context, cfg config.ObjectStoreConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client failed: %w", err)
	}

	presignExpire := time.Duration(cfg.PresignExpireHour) * time.Hour
	if presignExpire <= 0 {
		presignExpire = 24 * time.Hour
	}

	c := &Client{
		client:        mc,
		bucket:        cfg.Bucket,
		presignExpire: presignExpire,
	}
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket failed: %w", err)
	}
	if !exists {
		if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket failed: %w", err)
		}
	}
	return nil
}

// Put streams one object into the bucket. The caller supplies the exact size
// so the transfer is not chunk-buffered; any SDK error text is preserved for
// the caller to surface.
func (c *Client) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object failed: %w", err)
	}
	return nil
}

// PresignedURL returns a time-limited download URL for a stored object.
func (c *Client) PresignedURL(ctx context.Context, key string) (string, error) {
	u, err := c.client.PresignedGetObject(ctx, c.bucket, key, c.presignExpire, nil)
	if err != nil {
		return "", fmt.Errorf("presign object failed: %w", err)
	}
	return u.String(), nil
}

// Ping verifies the store is reachable and the bucket still exists.
func (c *Client) Ping(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("object store unreachable: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q missing", c.bucket)
	}
	return nil
}
