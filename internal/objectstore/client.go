package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"event-media/internal/logging"
)

// ObjectInfo describes a single object returned by a listing pass.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Config holds the connection settings for an S3-compatible bucket
// (MinIO, Cloudflare R2, AWS S3).
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool

	// PublicURL is the base URL for direct asset access (CDN or public
	// bucket endpoint). When empty, URLs are derived from the endpoint.
	PublicURL string
}

// Client wraps a MinIO client for a single bucket.
type Client struct {
	client    *minio.Client
	bucket    string
	endpoint  string
	publicURL string
	useSSL    bool
}

// New creates a Client and verifies the bucket exists.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	logging.Info("Object store initialized: endpoint=%s bucket=%s ssl=%v",
		cfg.Endpoint, cfg.Bucket, cfg.UseSSL)

	return &Client{
		client:    client,
		bucket:    cfg.Bucket,
		endpoint:  cfg.Endpoint,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		useSSL:    cfg.UseSSL,
	}, nil
}

// List returns every object under the given key prefix, in the order the
// store yields them. The store may return duplicate entries across retried
// internal pages; callers are expected to deduplicate.
func (c *Client) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	prefix = normalizeKey(prefix)

	var objects []ObjectInfo
	for obj := range c.client.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects under %q: %w", prefix, obj.Err)
		}
		objects = append(objects, ObjectInfo{Key: obj.Key, Size: obj.Size})
	}

	logging.Debug("Listed %d objects under prefix %q", len(objects), prefix)
	return objects, nil
}

// Put uploads a single object.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	key = normalizeKey(key)

	_, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", key, err)
	}

	logging.Debug("Uploaded object: key=%s size=%d type=%s", key, len(data), contentType)
	return nil
}

// Get downloads a single object into memory. Intended for small assets
// (photos, stills); video streaming goes through the public URL.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	key = normalizeKey(key)

	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, nil
}

// Remove deletes a single object. A nil return means the store confirmed
// the deletion.
func (c *Client) Remove(ctx context.Context, key string) error {
	key = normalizeKey(key)

	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}

	logging.Debug("Deleted object: key=%s", key)
	return nil
}

// PublicURL returns the direct-access URL for an object key.
func (c *Client) PublicURL(key string) string {
	key = normalizeKey(key)

	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}

	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.endpoint, c.bucket, key)
}

// normalizeKey strips a leading slash and converts backslashes, so keys
// built from filesystem paths on any platform land in the same namespace.
func normalizeKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	return strings.ReplaceAll(key, "\\", "/")
}
