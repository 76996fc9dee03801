package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Disk writes images under a local directory, the default for development.
type Disk struct {
	dir string
}

// NewDisk creates the upload directory if needed and returns a disk store.
func NewDisk(dir string) (*Disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Save writes the file and returns its path relative to the serving root.
func (d *Disk) Save(_ context.Context, filename string, data []byte) (string, error) {
	if d == nil {
		return "", fmt.Errorf("disk store is not initialized")
	}
	if filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	dest := filepath.Join(d.dir, filepath.Base(filename))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}
