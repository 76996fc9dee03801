package storage

import "context"

// Store persists uploaded product images. Save returns the location the
// catalog should reference (a relative path on disk, an object path on GCS).
type Store interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}
