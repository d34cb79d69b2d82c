package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store implements port.ArtifactStore on a local directory.
type Store struct {
	dir string
}

// NewStore creates a local artifact store rooted at dir. The directory is
// created on first save if missing.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes an artifact under the store directory and returns its path.
func (s *Store) Save(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	dst := filepath.Join(s.dir, filename)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating artifact file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing artifact: %w", err)
	}
	return dst, nil
}
