// Package storage provides the S3/MinIO gateway for CV attachments.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/LukhazD/germany-const-landing/internal/config"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// Client wraps a MinIO/S3 client bound to the configured CV bucket.
type Client struct {
	mc       *minio.Client
	bucket   string
	region   string
	endpoint string
}

// New creates a storage client. When a custom endpoint is configured
// (MinIO) path-style addressing is used; otherwise the client targets
// the standard AWS regional endpoint.
func New(cfg *config.S3Config) (*Client, error) {
	host := fmt.Sprintf("s3.%s.amazonaws.com", cfg.Region)
	secure := true

	if cfg.Endpoint != "" {
		u, err := url.Parse(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid S3_ENDPOINT %q: %w", cfg.Endpoint, err)
		}
		host = u.Host
		secure = u.Scheme == "https"
	}

	mc, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		mc:       mc,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
	}, nil
}

// Upload stores an object under the given key. The caller must not
// assume partial-write cleanup on failure.
func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return &errs.StorageError{Op: "upload", Err: err}
	}
	return nil
}

// Download retrieves an object by key. The returned reader must be
// closed by the caller; contentType falls back to application/pdf when
// the store did not record one.
func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", &errs.StorageError{Op: "download", Err: err}
	}

	// GetObject defers the request; Stat forces it so a missing key is
	// detected here instead of on first read.
	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", &errs.NotFoundError{Entity: "object"}
		}
		return nil, "", &errs.StorageError{Op: "download", Err: err}
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return obj, contentType, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string { return c.bucket }

// ObjectURL builds the stored reference for a key: the custom-endpoint
// path-style form when an endpoint is configured, else the standard
// regional virtual-hosted form.
func (c *Client) ObjectURL(key string) string {
	return BuildObjectURL(c.endpoint, c.bucket, c.region, key)
}

// ResolveObjectURL maps a stored reference back to the object key.
func (c *Client) ResolveObjectURL(ref string) string {
	return ResolveObjectKey(ref, c.bucket)
}

// BuildObjectURL builds a stored reference from its parts.
func BuildObjectURL(endpoint, bucket, region, key string) string {
	if endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(endpoint, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// ResolveObjectKey reverses BuildObjectURL for both reference forms:
// parse the URL path, strip a leading bucket-name segment if present,
// else treat the remaining path as the key directly. Non-URL input is
// treated as a bare key.
func ResolveObjectKey(ref, bucket string) string {
	if !strings.HasPrefix(ref, "http") {
		if decoded, err := url.PathUnescape(ref); err == nil {
			return decoded
		}
		return ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) > 0 && parts[0] == bucket {
		return strings.Join(parts[1:], "/")
	}
	return strings.TrimPrefix(u.Path, "/")
}
