package credential

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStorage writes artifacts to a local directory and serves them back via
// a stable public path of the same derivation. Access control is obscurity
// of the ticket identifier only.
type DiskStorage struct {
	dir        string
	publicPath string
}

// NewDiskStorage constructs disk-backed artifact storage.
func NewDiskStorage(dir, publicPath string) *DiskStorage {
	return &DiskStorage{dir: dir, publicPath: publicPath}
}

// Put writes the artifact and returns its public URL path.
func (s *DiskStorage) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create documents dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return s.publicPath + "/" + name, nil
}
