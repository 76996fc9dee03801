package storage

import (
	"context"
	"fmt"
	"path"

	gcstorage "cloud.google.com/go/storage"
	"github.com/homestylefoods/storefront-backend/pkg/config"
)

// GCS uploads images to a Cloud Storage bucket and returns the public URL.
type GCS struct {
	client *gcstorage.Client
	bucket string
	prefix string
}

// NewGCS dials Cloud Storage using ambient credentials.
func NewGCS(ctx context.Context, cfg config.GCSConfig) (*GCS, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}

	client, err := gcstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating gcs client: %w", err)
	}

	return &GCS{
		client: client,
		bucket: cfg.BucketName,
		prefix: cfg.Prefix,
	}, nil
}

// Save uploads the file and returns its public object URL.
func (g *GCS) Save(ctx context.Context, filename string, data []byte) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("gcs store is not initialized")
	}
	if filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	object := path.Join(g.prefix, path.Base(filename))
	writer := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("uploading %s: %w", object, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, object), nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}
