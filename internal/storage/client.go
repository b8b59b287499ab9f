package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ErrDisabled is returned when storage is not configured.
var ErrDisabled = fmt.Errorf("storage service not configured")

// Config holds S3-compatible connection settings.
type Config struct {
	Endpoint        string // e.g. "minio:9000" or "s3.tebi.io"
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
}

// Client stores profile images in a single bucket.
type Client struct {
	mc      *minio.Client
	bucket  string
	region  string
	enabled bool
	logger  *zap.Logger
}

// NewClient creates a storage client. An empty Endpoint yields a disabled client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	logger = logger.Named("Storage")
	if cfg.Endpoint == "" {
		logger.Warn("Storage endpoint not set, image uploads disabled")
		return &Client{enabled: false, logger: logger}, nil
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Client{mc: mc, bucket: cfg.Bucket, region: cfg.Region, enabled: true, logger: logger}, nil
}

func (c *Client) Enabled() bool { return c.enabled }

// EnsureBucket creates the bucket if it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	if !c.enabled {
		return ErrDisabled
	}
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	c.logger.Info("Creating bucket", zap.String("bucket", c.bucket))
	return c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region})
}

func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if !c.enabled {
		return ErrDisabled
	}
	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return ErrDisabled
	}
	return c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}
